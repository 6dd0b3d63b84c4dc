package engines

import (
	"os"

	"github.com/xitongsys/parquet-go/source"
)

// LocalFile adapts an os.File to parquet-go's source.ParquetFile interface
// so the reader and writer can work against the local benchmark directory.
type LocalFile struct {
	path string
	file *os.File
}

// CreateLocalFile opens path for writing, truncating any previous trial's
// output.
func CreateLocalFile(path string) (source.ParquetFile, error) {
	lf := &LocalFile{path: path}
	return lf.Create(path)
}

// OpenLocalFile opens path for reading.
func OpenLocalFile(path string) (source.ParquetFile, error) {
	lf := &LocalFile{path: path}
	return lf.Open(path)
}

// Create implements source.ParquetFile
func (f *LocalFile) Create(name string) (source.ParquetFile, error) {
	file, err := os.Create(name)
	if err != nil {
		return nil, err
	}
	return &LocalFile{path: name, file: file}, nil
}

// Open implements source.ParquetFile
func (f *LocalFile) Open(name string) (source.ParquetFile, error) {
	if name == "" {
		name = f.path
	}
	file, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	return &LocalFile{path: name, file: file}, nil
}

// Seek implements io.Seeker
func (f *LocalFile) Seek(offset int64, whence int) (int64, error) {
	return f.file.Seek(offset, whence)
}

// Read implements io.Reader
func (f *LocalFile) Read(p []byte) (int, error) {
	return f.file.Read(p)
}

// Write implements io.Writer
func (f *LocalFile) Write(p []byte) (int, error) {
	return f.file.Write(p)
}

// Close implements io.Closer
func (f *LocalFile) Close() error {
	if f.file == nil {
		return nil
	}
	return f.file.Close()
}
