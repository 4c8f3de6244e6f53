package six

// Product is the common surface the transcoder, version updater, and DES
// binder operate against regardless of which of the three product
// families a concrete value is.
type Product interface {
	Family() Family
	ProductVersion() Version
	Log() *ProcessingLog
}

var (
	_ Product = (*SICD)(nil)
	_ Product = (*SIDD)(nil)
	_ Product = (*CPHD)(nil)
)
