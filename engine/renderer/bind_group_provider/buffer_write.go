package bind_group_provider

// BufferWrite is one staged upload into the buffer bound at Binding on a provider, starting Offset bytes in.
// Writes are collected during a frame and flushed together by Renderer.WriteBuffers.
type BufferWrite struct {
	Provider BindGroupProvider
	Binding  int
	Offset   uint64
	Data     []byte
}

// Valid reports whether the write has a live target and something to upload.
//
// Returns:
//   - bool: false for nil or released providers and empty payloads
func (w BufferWrite) Valid() bool {
	return w.Provider != nil && !w.Provider.Released() && len(w.Data) > 0
}
