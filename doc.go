// Package tange contains the core components of tange, a library for lazy,
// partitioned-collection data processing. This root package defines the
// storage and serialization contracts which are employed during the regular
// use of the library, as well as in the extension of the library with custom
// storage backends, and is an excellent overview of tange's key concepts.
// The collection subpackage provides the transformation algebra, the deferred
// subpackage provides the lazy task graph and its schedulers, and the
// accumulators subpackage provides concrete storage backends.
package tange
