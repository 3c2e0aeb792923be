package codec

type DecodeOption func(*decState)

// Summary marks every decoded attribute as a summary.  Summary arrays may
// omit their encoding and data, and summary dictionaries their value.
func Summary(v bool) DecodeOption {
	return func(ds *decState) { ds.summary = v }
}

type decState struct {
	summary bool
}
