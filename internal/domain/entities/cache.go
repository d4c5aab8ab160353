package entities

import "time"

// Cache represents a GitHub Actions cache entry. The ID is scoped to the
// repository the cache was listed from.
type Cache struct {
	ID             int64
	Key            string
	Ref            string
	Version        string
	SizeInBytes    int64
	CreatedAt      time.Time
	LastAccessedAt time.Time
}

// Inventory is the cache listing of a single repository.
type Inventory struct {
	Repository Repository
	Caches     []Cache
	ListErr    error
}

// TotalBytes sums the size of every cache in the inventory.
func (i Inventory) TotalBytes() int64 {
	var total int64
	for _, c := range i.Caches {
		total += c.SizeInBytes
	}
	return total
}
