// Package render prints attributes and node reports for people.
package render
