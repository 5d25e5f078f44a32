// This package collects five ways of building a singleton and puts them side by side.
//
// Variants
//
// Each variant lives in its own package and exposes the same shape: GetInstance, GetData, and
// SetData where the variant allows mutation.
//   - unsafelazy (Singleton1): built on first use, no synchronization at all. Not safe for concurrent use.
//   - mutexlazy  (Singleton2): built on first use under a mutex; every access holds the mutex through a Guard.
//   - oncecell   (Singleton3): built exactly once through a one-time cell; read-only afterwards.
//   - eager      (Singleton4): built at package initialization; read-only; Init has no effect.
//   - onceflag   (Singleton5): built exactly once behind a once-flag; mutable without synchronization;
//     can be destroyed explicitly, which logs a teardown line.
//
// Providers
//
// NewProvider hands out an isolated slot for a Policy so the variants can be exercised
// interchangeably without touching the process-wide instances. Global does the same over the
// process-wide instances.
package singleton
