// Package bootstrap scans a module for dix annotations and generates the code
// that constructs every annotated provider in dependency order.
//
// Providers are declared with comments:
//
//	// @factory: NewStore -> store
//	// @wire: store(config, @appName)
//	func NewStore(cfg *Config, name string) *Store
//
// A function annotated with a registered qualifier such as @appName provides
// the value bound under that qualifier, and @name in a @wire list refers to it.
// Qualifiers on fields and parameters are collected as sites; the binding
// package honours them at runtime through fx and dig.
package bootstrap
