package cache

// SchemaVersion is bumped when the on-disk layout changes
const SchemaVersion = 1

// BoltDB bucket names
const (
	BucketStemsUS = "stems_us" // {word} -> StemEntry, American rules
	BucketStemsGB = "stems_gb" // {word} -> StemEntry, British rules
	BucketMeta    = "meta"     // schema_version, cache_id

	// Meta keys
	KeySchemaVersion = "schema_version"
	KeyCacheID       = "cache_id"
)

// AllBuckets returns all bucket names for initialization
func AllBuckets() []string {
	return []string{
		BucketStemsUS,
		BucketStemsGB,
		BucketMeta,
	}
}

// stemBuckets are the buckets dropped when the cache is invalidated
var stemBuckets = []string{BucketStemsUS, BucketStemsGB}

// bucketFor returns the stem bucket of a variant
func bucketFor(british bool) []byte {
	if british {
		return []byte(BucketStemsGB)
	}
	return []byte(BucketStemsUS)
}
