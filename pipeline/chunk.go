package pipeline

// Chunk represents a single numbered region of a byte payload.
//
// Number records how many chunks into the payload this chunk is.
// Data holds the chunk's bytes and Size is the length of Data.
// Hash is the hex-encoded md5 sum of Data, when a HashData stage has
// computed it.
type Chunk struct {
	Number uint
	Data   []byte
	Size   uint
	Hash   string
}
