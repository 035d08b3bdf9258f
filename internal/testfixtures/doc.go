// Package testfixtures holds open enums generated from enums.yaml. Its tests
// run the generated code against the openenum runtime.
package testfixtures

//go:generate go run github.com/broady/openenum/cmd/openenum gen . --def enums.yaml --json --text
