package iostream

import "os"

// FileChannel adapts *os.File to Channel.
type FileChannel struct {
	f *os.File
}

// OpenFile opens path with the given flag/perm and wraps it as a Channel.
func OpenFile(path string, flag int, perm os.FileMode) (*FileChannel, error) {
	f, err := os.OpenFile(path, flag, perm)
	if err != nil {
		return nil, err
	}

	return &FileChannel{f: f}, nil
}

func (c *FileChannel) Read(p []byte) (int, error)                 { return c.f.Read(p) }
func (c *FileChannel) Write(p []byte) (int, error)                { return c.f.Write(p) }
func (c *FileChannel) Seek(offset int64, whence int) (int64, error) { return c.f.Seek(offset, whence) }
func (c *FileChannel) Close() error                                { return c.f.Close() }

func (c *FileChannel) Size() (int64, error) {
	info, err := c.f.Stat()
	if err != nil {
		return 0, err
	}

	return info.Size(), nil
}
