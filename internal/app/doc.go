// Package app provides application services that orchestrate use cases by
// coordinating between domain logic and infrastructure through port
// interfaces. Every mutation runs an explicit ordered pipeline (authorize ->
// validate -> persist -> post-process); every read runs the visibility gate
// and attaches derived progress.
package app
