package index

var (
	bPosts   = []byte("posts")    // slug -> postBytes
	bPages   = []byte("pages")    // slug -> pageBytes
	bIdxDate = []byte("idx_date") // invTime+0x00+id -> slug
	bIdxTag  = []byte("idx_tag")  // tag -> sub-bucket of date keys
)
