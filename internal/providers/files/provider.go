package files

import (
	"fmt"

	"github.com/HobbyCoders/deck/internal/shared/paths"
	"github.com/HobbyCoders/deck/internal/shared/types"
)

// Provider implements workspace file operations for cards
type Provider struct {
	basic     *BasicOps
	directory *DirectoryOps
	metadata  *MetadataOps
	search    *SearchOps
	archives  *ArchivesOps
}

// NewProvider creates a files provider sandboxed to the workspace root
func NewProvider(root paths.Root) *Provider {
	ops := &Ops{Root: root}

	return &Provider{
		basic:     &BasicOps{Ops: ops},
		directory: &DirectoryOps{Ops: ops},
		metadata:  &MetadataOps{Ops: ops},
		search:    &SearchOps{Ops: ops},
		archives:  &ArchivesOps{Ops: ops},
	}
}

// Definition returns service metadata with all module tools
func (p *Provider) Definition() types.Service {
	tools := []types.Tool{}
	tools = append(tools, p.basic.GetTools()...)
	tools = append(tools, p.directory.GetTools()...)
	tools = append(tools, p.metadata.GetTools()...)
	tools = append(tools, p.search.GetTools()...)
	tools = append(tools, p.archives.GetTools()...)

	return types.Service{
		ID:          "files",
		Name:        "Workspace Files",
		Description: "Sandboxed file operations inside the user workspace",
		Category:    types.CategoryFiles,
		Capabilities: []string{
			"read_write",
			"directories",
			"metadata",
			"mime_detection",
			"glob_search",
			"content_search",
			"archives",
		},
		Tools: tools,
	}
}

// Execute routes to the appropriate module
func (p *Provider) Execute(toolID string, params map[string]interface{}, cardCtx *types.Context) (*types.Result, error) {
	switch toolID {
	// Basic operations
	case "files.read":
		return p.basic.Read(params, cardCtx)
	case "files.write":
		return p.basic.Write(params, cardCtx)
	case "files.append":
		return p.basic.Append(params, cardCtx)
	case "files.delete":
		return p.basic.Delete(params, cardCtx)
	case "files.exists":
		return p.basic.Exists(params, cardCtx)
	case "files.copy":
		return p.basic.Copy(params, cardCtx)
	case "files.move":
		return p.basic.Move(params, cardCtx)
	case "files.json.read":
		return p.basic.ReadJSON(params, cardCtx)
	case "files.json.write":
		return p.basic.WriteJSON(params, cardCtx)

	// Directory operations
	case "files.dir.list":
		return p.directory.List(params, cardCtx)
	case "files.dir.create":
		return p.directory.Create(params, cardCtx)

	// Metadata operations
	case "files.stat":
		return p.metadata.Stat(params, cardCtx)
	case "files.mime":
		return p.metadata.MimeType(params, cardCtx)
	case "files.dir.size":
		return p.metadata.DirSize(params, cardCtx)

	// Search operations
	case "files.find":
		return p.search.Find(params, cardCtx)
	case "files.glob":
		return p.search.Glob(params, cardCtx)
	case "files.search":
		return p.search.SearchContent(params, cardCtx)

	// Archive operations
	case "files.zip.create":
		return p.archives.ZIPCreate(params, cardCtx)
	case "files.zip.extract":
		return p.archives.ZIPExtract(params, cardCtx)
	case "files.zip.list":
		return p.archives.ZIPList(params, cardCtx)
	case "files.gzip.compress":
		return p.archives.GzipCompress(params, cardCtx)
	case "files.gzip.decompress":
		return p.archives.GzipDecompress(params, cardCtx)

	default:
		return Failure(fmt.Sprintf("unknown tool: %s", toolID))
	}
}
