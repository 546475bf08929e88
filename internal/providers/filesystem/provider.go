package filesystem

import (
	"context"

	"github.com/GriffinCanCode/drive-mcp/internal/types"
)

// Tool names
const (
	ToolCheckMount   = "check_mount"
	ToolListFiles    = "list_files"
	ToolReadFile     = "read_file"
	ToolWriteFile    = "write_file"
	ToolDeleteFile   = "delete_file"
	ToolCreateFolder = "create_folder"
	ToolGetFileInfo  = "get_file_info"
)

// Definition returns service metadata
func (p *Provider) Definition() types.Service {
	return types.Service{
		ID:          "drive",
		Name:        "Proton Drive",
		Description: "File and folder operations confined to the Proton Drive sync folder",
		Category:    types.CategoryFilesystem,
		Tools: []types.Tool{
			{
				Name:        ToolCheckMount,
				Description: "Check if Proton Drive is mounted and accessible",
			},
			{
				Name:        ToolListFiles,
				Description: "List files and folders in Proton Drive",
				Parameters: []types.Parameter{
					{Name: "path", Type: "string", Description: `Path relative to Proton Drive root (e.g., "Documents" or "Projects/2024")`},
					{Name: "pattern", Type: "string", Description: `Optional glob matched against entry names (e.g., "*.md")`},
				},
			},
			{
				Name:        ToolReadFile,
				Description: "Read a text file from Proton Drive",
				Parameters: []types.Parameter{
					{Name: "path", Type: "string", Description: "File path relative to Proton Drive root", Required: true},
				},
			},
			{
				Name:        ToolWriteFile,
				Description: "Write or create a file in Proton Drive",
				Parameters: []types.Parameter{
					{Name: "path", Type: "string", Description: "File path relative to Proton Drive root", Required: true},
					{Name: "content", Type: "string", Description: "Text content to write to the file", Required: true},
				},
			},
			{
				Name:        ToolDeleteFile,
				Description: "Delete a file or folder from Proton Drive",
				Parameters: []types.Parameter{
					{Name: "path", Type: "string", Description: "Path to delete relative to Proton Drive root", Required: true},
				},
			},
			{
				Name:        ToolCreateFolder,
				Description: "Create a new folder in Proton Drive",
				Parameters: []types.Parameter{
					{Name: "path", Type: "string", Description: "Folder path relative to Proton Drive root", Required: true},
				},
			},
			{
				Name:        ToolGetFileInfo,
				Description: "Get information about a file or folder",
				Parameters: []types.Parameter{
					{Name: "path", Type: "string", Description: "Path to the file or folder", Required: true},
				},
			},
		},
	}
}

// Execute runs a drive tool. Every error it returns is a *types.ToolError.
func (p *Provider) Execute(ctx context.Context, toolName string, params map[string]interface{}, appCtx *types.Context) (*types.Result, error) {
	result, err := p.dispatch(ctx, toolName, params)
	if err != nil {
		return nil, wrapError(toolName, err)
	}
	return result, nil
}

func (p *Provider) dispatch(ctx context.Context, toolName string, params map[string]interface{}) (*types.Result, error) {
	if params == nil {
		params = map[string]interface{}{}
	}

	switch toolName {
	case ToolCheckMount:
		return p.CheckMount(ctx)
	case ToolListFiles:
		args, err := decodeListFiles(toolName, params)
		if err != nil {
			return nil, err
		}
		return p.ListFiles(ctx, args)
	case ToolReadFile:
		args, err := decodePath(toolName, params)
		if err != nil {
			return nil, err
		}
		return p.ReadFile(ctx, args)
	case ToolWriteFile:
		args, err := decodeWriteFile(toolName, params)
		if err != nil {
			return nil, err
		}
		return p.WriteFile(ctx, args)
	case ToolDeleteFile:
		args, err := decodePath(toolName, params)
		if err != nil {
			return nil, err
		}
		return p.DeleteFile(ctx, args)
	case ToolCreateFolder:
		args, err := decodePath(toolName, params)
		if err != nil {
			return nil, err
		}
		return p.CreateFolder(ctx, args)
	case ToolGetFileInfo:
		args, err := decodePath(toolName, params)
		if err != nil {
			return nil, err
		}
		return p.GetFileInfo(ctx, args)
	default:
		return nil, types.MethodNotFound(toolName)
	}
}
