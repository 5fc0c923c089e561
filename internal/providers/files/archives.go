package files

import (
	"archive/zip"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/HobbyCoders/deck/internal/shared/types"
	"github.com/charlievieth/fastwalk"
	"github.com/klauspost/compress/gzip"
)

// ArchivesOps handles archive operations (zip, gzip)
type ArchivesOps struct {
	*Ops
}

// GetTools returns archive operation tool definitions
func (a *ArchivesOps) GetTools() []types.Tool {
	return []types.Tool{
		{
			ID:          "files.zip.create",
			Name:        "Create ZIP",
			Description: "Zip a directory tree into an archive",
			Parameters: []types.Parameter{
				{Name: "source", Type: "string", Description: "Source directory", Required: true},
				{Name: "output", Type: "string", Description: "Output archive path", Required: true},
			},
			Returns: "object",
		},
		{
			ID:          "files.zip.extract",
			Name:        "Extract ZIP",
			Description: "Extract a ZIP archive",
			Parameters: []types.Parameter{
				{Name: "archive", Type: "string", Description: "Archive path", Required: true},
				{Name: "destination", Type: "string", Description: "Destination directory", Required: true},
			},
			Returns: "object",
		},
		{
			ID:          "files.zip.list",
			Name:        "List ZIP",
			Description: "List ZIP archive contents",
			Parameters: []types.Parameter{
				{Name: "archive", Type: "string", Description: "Archive path", Required: true},
			},
			Returns: "array",
		},
		{
			ID:          "files.gzip.compress",
			Name:        "Gzip Compress",
			Description: "Compress a single file with gzip",
			Parameters: []types.Parameter{
				{Name: "path", Type: "string", Description: "File path", Required: true},
			},
			Returns: "object",
		},
		{
			ID:          "files.gzip.decompress",
			Name:        "Gzip Decompress",
			Description: "Decompress a .gz file",
			Parameters: []types.Parameter{
				{Name: "path", Type: "string", Description: "Archive path (.gz)", Required: true},
			},
			Returns: "object",
		},
	}
}

// ZIPCreate zips a directory tree
func (a *ArchivesOps) ZIPCreate(params map[string]interface{}, cardCtx *types.Context) (*types.Result, error) {
	source, ok := params["source"].(string)
	if !ok {
		return Failure("source parameter required")
	}
	output, ok := params["output"].(string)
	if !ok || output == "" {
		return Failure("output parameter required")
	}

	fullSource, err := a.resolve(source)
	if err != nil {
		return Failure(err.Error())
	}
	fullOutput, err := a.resolve(output)
	if err != nil {
		return Failure(err.Error())
	}

	outFile, err := os.Create(fullOutput)
	if err != nil {
		return Failure(fmt.Sprintf("zip creation failed: %v", err))
	}
	defer outFile.Close()

	zipWriter := zip.NewWriter(outFile)
	defer zipWriter.Close()

	var totalSize int64
	fileCount := 0
	conf := fastwalk.Config{Follow: false}

	walkErr := fastwalk.Walk(&conf, fullSource, func(p string, d os.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if p == fullOutput {
			return nil
		}

		relPath, _ := filepath.Rel(fullSource, p)
		if relPath == "." {
			return nil
		}

		if d.IsDir() {
			_, err := zipWriter.Create(relPath + "/")
			return err
		}

		writer, err := zipWriter.Create(relPath)
		if err != nil {
			return err
		}

		file, err := os.Open(p)
		if err != nil {
			return nil
		}
		defer file.Close()

		size, _ := io.Copy(writer, file)
		totalSize += size
		fileCount++

		return nil
	})
	if walkErr != nil {
		return Failure(fmt.Sprintf("zip creation failed: %v", walkErr))
	}

	return Success(map[string]interface{}{
		"created":    true,
		"output":     output,
		"files":      fileCount,
		"total_size": totalSize,
	})
}

// ZIPExtract extracts a ZIP archive
func (a *ArchivesOps) ZIPExtract(params map[string]interface{}, cardCtx *types.Context) (*types.Result, error) {
	archive, ok := params["archive"].(string)
	if !ok || archive == "" {
		return Failure("archive parameter required")
	}
	destination, ok := params["destination"].(string)
	if !ok {
		return Failure("destination parameter required")
	}

	fullArchive, err := a.resolve(archive)
	if err != nil {
		return Failure(err.Error())
	}
	fullDest, err := a.resolve(destination)
	if err != nil {
		return Failure(err.Error())
	}

	reader, err := zip.OpenReader(fullArchive)
	if err != nil {
		return Failure(fmt.Sprintf("open failed: %v", err))
	}
	defer reader.Close()

	fileCount := 0
	for _, file := range reader.File {
		// Prevent zip-slip
		destPath := filepath.Join(fullDest, file.Name)
		if !strings.HasPrefix(destPath, filepath.Clean(fullDest)+string(os.PathSeparator)) {
			continue
		}

		if file.FileInfo().IsDir() {
			os.MkdirAll(destPath, 0o755)
			continue
		}

		if err := os.MkdirAll(filepath.Dir(destPath), 0o755); err != nil {
			continue
		}

		srcFile, err := file.Open()
		if err != nil {
			continue
		}

		dstFile, err := os.Create(destPath)
		if err != nil {
			srcFile.Close()
			continue
		}

		_, err = io.Copy(dstFile, srcFile)
		srcFile.Close()
		dstFile.Close()

		if err == nil {
			fileCount++
		}
	}

	return Success(map[string]interface{}{
		"extracted":   true,
		"destination": destination,
		"files":       fileCount,
	})
}

// ZIPList lists ZIP contents without extracting
func (a *ArchivesOps) ZIPList(params map[string]interface{}, cardCtx *types.Context) (*types.Result, error) {
	archive, ok := params["archive"].(string)
	if !ok || archive == "" {
		return Failure("archive parameter required")
	}

	fullArchive, err := a.resolve(archive)
	if err != nil {
		return Failure(err.Error())
	}

	reader, err := zip.OpenReader(fullArchive)
	if err != nil {
		return Failure(fmt.Sprintf("open failed: %v", err))
	}
	defer reader.Close()

	entries := []map[string]interface{}{}
	for _, file := range reader.File {
		info := file.FileInfo()
		entries = append(entries, map[string]interface{}{
			"name":            file.Name,
			"size":            info.Size(),
			"compressed_size": file.CompressedSize64,
			"modified":        info.ModTime().Unix(),
			"is_dir":          info.IsDir(),
		})
	}

	return Success(map[string]interface{}{"archive": archive, "entries": entries, "count": len(entries)})
}

// GzipCompress compresses a single file to <path>.gz
func (a *ArchivesOps) GzipCompress(params map[string]interface{}, cardCtx *types.Context) (*types.Result, error) {
	path, ok := params["path"].(string)
	if !ok || path == "" {
		return Failure("path parameter required")
	}

	fullPath, err := a.resolve(path)
	if err != nil {
		return Failure(err.Error())
	}

	src, err := os.Open(fullPath)
	if err != nil {
		return Failure(fmt.Sprintf("compress failed: %v", err))
	}
	defer src.Close()

	dst, err := os.Create(fullPath + ".gz")
	if err != nil {
		return Failure(fmt.Sprintf("compress failed: %v", err))
	}
	defer dst.Close()

	gzWriter, err := gzip.NewWriterLevel(dst, gzip.BestSpeed)
	if err != nil {
		return Failure(fmt.Sprintf("compress failed: %v", err))
	}

	written, err := io.Copy(gzWriter, src)
	if err != nil {
		gzWriter.Close()
		return Failure(fmt.Sprintf("compress failed: %v", err))
	}
	if err := gzWriter.Close(); err != nil {
		return Failure(fmt.Sprintf("compress failed: %v", err))
	}

	return Success(map[string]interface{}{"path": path, "output": path + ".gz", "original_size": written})
}

// GzipDecompress decompresses a .gz file next to the archive
func (a *ArchivesOps) GzipDecompress(params map[string]interface{}, cardCtx *types.Context) (*types.Result, error) {
	path, ok := params["path"].(string)
	if !ok || path == "" {
		return Failure("path parameter required")
	}
	if !strings.HasSuffix(path, ".gz") {
		return Failure("path must end in .gz")
	}

	fullPath, err := a.resolve(path)
	if err != nil {
		return Failure(err.Error())
	}

	src, err := os.Open(fullPath)
	if err != nil {
		return Failure(fmt.Sprintf("decompress failed: %v", err))
	}
	defer src.Close()

	gzReader, err := gzip.NewReader(src)
	if err != nil {
		return Failure(fmt.Sprintf("decompress failed: %v", err))
	}
	defer gzReader.Close()

	outputPath := strings.TrimSuffix(fullPath, ".gz")
	dst, err := os.Create(outputPath)
	if err != nil {
		return Failure(fmt.Sprintf("decompress failed: %v", err))
	}
	defer dst.Close()

	written, err := io.Copy(dst, gzReader)
	if err != nil {
		return Failure(fmt.Sprintf("decompress failed: %v", err))
	}

	return Success(map[string]interface{}{
		"path":   path,
		"output": strings.TrimSuffix(path, ".gz"),
		"size":   written,
	})
}
