// Package cmd provides the command-line interface for blockcraft.
//
// # Available Commands
//
//   - init: write a .blockcraft.yml with the default settings
//   - serve: run the editor API and live canvas preview
//   - catalog: list the component catalog
//   - export: export a page built from catalog blocks
//   - check: compare preview and exported markup for each block
//   - deploy: run a simulated deployment
//   - version: show build information
//
// # Command Examples
//
//	// Serve on another port with the assistant enabled
//	GEMINI_API_KEY=... blockcraft serve --port 3000
//
//	// Export a landing page as a single HTML document
//	blockcraft export --name "Acme" --blocks navbar,hero,features,footer
//
//	// Export the project scaffold instead
//	blockcraft export --target scaffold --out ./acme
//
//	// List the catalog as YAML
//	blockcraft catalog --format yaml
//
// Configuration is read from .blockcraft.yml, the file named by --config or
// BLOCKCRAFT_CONFIG_FILE, and BLOCKCRAFT_<SECTION>_<OPTION> environment
// variables.
package cmd
