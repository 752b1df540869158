package v1

type SyncStatus string

const (
	StatusUninitialized SyncStatus = "uninitialized"
	StatusOK            SyncStatus = "ok"
	StatusLoading       SyncStatus = "loading"
	StatusError         SyncStatus = "error"
)

type ByTitle []*Story

func (p ByTitle) Len() int {
	return len(p)
}

func (p ByTitle) Less(i, j int) bool {
	return p[i].Title < p[j].Title
}

func (p ByTitle) Swap(i, j int) {
	p[i], p[j] = p[j], p[i]
}
