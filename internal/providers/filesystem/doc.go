// Package filesystem implements the Proton Drive tools.
//
// Every handler confines its path argument to the drive root before touching
// the filesystem, so no operation can read, write or delete outside it.
//
// Files are split by concern:
//   - mount: check_mount
//   - directory: list_files, create_folder
//   - basic: read_file, write_file, delete_file
//   - metadata: get_file_info
//   - format: byte sizes, timestamps and result encoding
//
// Handlers return (*types.Result, error). Execute wraps anything untyped so
// callers always receive a *types.ToolError.
package filesystem
