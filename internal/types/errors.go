package types

import "errors"

var (
	// ErrMissingVPC is returned when a node references a VPC the fabric does not define.
	ErrMissingVPC = errors.New("node references a vpc that is not defined in the fabric")

	// ErrMissingRenderField is returned when the render context lacks a value the
	// rendered configuration needs.
	ErrMissingRenderField = errors.New("render context is missing a required field")

	ErrFabricNotFound = errors.New("fabric not found in state")

	// ErrDuplicateDeclaration is returned when two rendered files of one directory would
	// declare the same module or resource.
	ErrDuplicateDeclaration = errors.New("declaration would be rendered more than once")
)
