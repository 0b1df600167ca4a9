// Package config implements the functions, types, and interfaces for the module.
package config

// Global constants for the application.
const (
	Application = "mapgen"
	Description = "Generate bidirectional mappers between paired structs"
	WebSite     = "https://github.com/origadmin/mapgen"
	UI          = "mapgen"
)

// Defaults for the naming conventions of generated code.
const (
	DefaultDirectivePrefix        = "//go:mapgen:"
	DefaultTagKey                 = "mapped"
	DefaultMapperNamePattern      = "%sMapper"
	DefaultMapperPackagePattern   = "%s/mappers"
	DefaultRegistryName           = "Transformer"
	DefaultRegistryPackagePattern = "%s/generated"
	DefaultFileSuffix             = ".gen.go"
)
