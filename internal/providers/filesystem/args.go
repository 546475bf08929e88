package filesystem

import (
	"fmt"

	"github.com/GriffinCanCode/drive-mcp/internal/types"
)

// ListFilesArgs are the list_files arguments. Path defaults to the root.
type ListFilesArgs struct {
	Path    string
	Pattern string
}

// PathArgs serve every tool that takes only a path
type PathArgs struct {
	Path string
}

// WriteFileArgs are the write_file arguments
type WriteFileArgs struct {
	Path    string
	Content string
}

func decodeListFiles(tool string, params map[string]interface{}) (ListFilesArgs, error) {
	path, err := optionalString(tool, params, "path")
	if err != nil {
		return ListFilesArgs{}, err
	}
	pattern, err := optionalString(tool, params, "pattern")
	if err != nil {
		return ListFilesArgs{}, err
	}
	return ListFilesArgs{Path: path, Pattern: pattern}, nil
}

func decodePath(tool string, params map[string]interface{}) (PathArgs, error) {
	path, err := requiredString(tool, params, "path", false)
	if err != nil {
		return PathArgs{}, err
	}
	return PathArgs{Path: path}, nil
}

func decodeWriteFile(tool string, params map[string]interface{}) (WriteFileArgs, error) {
	path, err := requiredString(tool, params, "path", false)
	if err != nil {
		return WriteFileArgs{}, err
	}
	// Empty content is a legitimate way to truncate a file; absent content is not.
	content, err := requiredString(tool, params, "content", true)
	if err != nil {
		return WriteFileArgs{}, err
	}
	return WriteFileArgs{Path: path, Content: content}, nil
}

func optionalString(tool string, params map[string]interface{}, key string) (string, error) {
	raw, ok := params[key]
	if !ok || raw == nil {
		return "", nil
	}
	value, ok := raw.(string)
	if !ok {
		return "", invalidArgument(tool, fmt.Sprintf("%s parameter must be a string", key))
	}
	return value, nil
}

func requiredString(tool string, params map[string]interface{}, key string, allowEmpty bool) (string, error) {
	raw, ok := params[key]
	if !ok || raw == nil {
		return "", invalidArgument(tool, fmt.Sprintf("%s parameter required", key))
	}
	value, ok := raw.(string)
	if !ok {
		return "", invalidArgument(tool, fmt.Sprintf("%s parameter must be a string", key))
	}
	if value == "" && !allowEmpty {
		return "", invalidArgument(tool, fmt.Sprintf("%s parameter required", key))
	}
	return value, nil
}

func invalidArgument(tool, message string) error {
	return types.NewToolError(types.KindInvalidArgument, tool, message, nil)
}
