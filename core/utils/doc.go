// Package utils provides loose type conversion shared by the SQL source and
// the HTTP form parsing.
package utils
