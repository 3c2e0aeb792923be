// Package format renders and parses documents as JSON, YAML or CBOR.
package format
