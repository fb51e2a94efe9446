package client

// QueryKey identifies one cached resource collection. Typed keys keep a
// mistyped key from silently never matching on invalidation.
type QueryKey int

const (
	KeyLocations QueryKey = iota
	KeySchedules
)

func (k QueryKey) String() string {
	switch k {
	case KeyLocations:
		return "locations"
	case KeySchedules:
		return "schedules"
	default:
		return "unknown"
	}
}
