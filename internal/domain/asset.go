package domain

// AssetOrigin distinguishes user-supplied imagery from pipeline output that
// was cached for reuse.
type AssetOrigin string

const (
	// AssetUploaded marks immutable user input; it always wins over the cache.
	AssetUploaded AssetOrigin = "uploaded"
	// AssetGenerated marks a cached hero produced by a generation engine.
	AssetGenerated AssetOrigin = "generated"
)

// Asset is a stored hero bitmap for a product.
type Asset struct {
	Product string
	Origin  AssetOrigin
	// Region is set for generated assets only; the cache is region-scoped.
	Region string
	Path   string
}
