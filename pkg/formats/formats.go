// Package formats provides encoders and parsers for mesh file formats.
package formats

// Note: Wavefront OBJ writing is in obj.go, parsing in obj_parse.go
