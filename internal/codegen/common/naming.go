package common

import (
	"strings"
	"unicode"
)

// ToCamelCase lowers the first rune of s: "SubmitTransaction" -> "submitTransaction".
func ToCamelCase(s string) string {
	if s == "" {
		return ""
	}
	r := []rune(s)
	r[0] = unicode.ToLower(r[0])
	return string(r)
}

// NamespacePath splits a dotted namespace into path segments.
// Example: "org.acme.sample" -> ["org", "acme", "sample"].
func NamespacePath(namespace string) []string {
	if namespace == "" {
		return nil
	}
	return strings.Split(namespace, ".")
}

// SourcePath returns the path segments of the Java source file declaring
// name in namespace.
func SourcePath(namespace, name string) []string {
	return append(NamespacePath(namespace), name+".java")
}
