package vault

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// DefaultGitignore is the ignore template written into new vaults. It
// excludes Obsidian's per-device state and the usual OS noise while
// keeping notes and shared settings under version control.
const DefaultGitignore = `# Obsidian Git Ignore

# Workspace settings (contains personal preferences)
.obsidian/workspace.json
.obsidian/workspace-mobile.json
.obsidian/workspaces.json

# Plugins (can be large, reinstall via community)
.obsidian/plugins/*/main.js
.obsidian/plugins/*.js
.obsidian/plugins/*.json

# Cache files
.obsidian/cache
.obsidian/graph.json

# Sync settings (if using Obsidian Sync)
.obsidian/sync.json

# OS files
.DS_Store
Thumbs.db
*.swp
*.swo
*~

# Temporary files
*.tmp
*.temp
.tmp/
temp/

# Logs
*.log

# Node modules (if using plugins with npm)
node_modules/

# Build artifacts
dist/
build/

# Backup files
*.bak
*.backup

# Large media files (optional - uncomment if needed)
# *.mp4
# *.mov
# *.avi
# *.mp3
# *.wav

# Vault-specific exclusions
# Add your own patterns below
`

// IgnoreResult reports what ConfigureIgnore did.
type IgnoreResult struct {
	Path    string
	Created bool
}

// ConfigureIgnore writes the Obsidian .gitignore into the vault. An
// existing file is left alone unless overwrite is set. Custom patterns
// are appended under their own section.
func ConfigureIgnore(vaultPath string, custom []string, overwrite bool) (IgnoreResult, error) {
	path := filepath.Join(ExpandPath(vaultPath), ".gitignore")

	if _, err := os.Stat(path); err == nil && !overwrite {
		return IgnoreResult{Path: path, Created: false}, nil
	}

	content := DefaultGitignore
	if len(custom) > 0 {
		var sb strings.Builder
		sb.WriteString(content)
		sb.WriteString("\n# Custom patterns\n")
		for _, pattern := range custom {
			sb.WriteString(pattern)
			sb.WriteString("\n")
		}
		content = sb.String()
	}

	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return IgnoreResult{}, fmt.Errorf("failed to create .gitignore: %w", err)
	}
	return IgnoreResult{Path: path, Created: true}, nil
}
