package report

import (
	"fmt"
	"go/ast"
	"go/parser"
	"go/token"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/mod/modfile"
)

// TestDoc is what the source says about one test function.
type TestDoc struct {
	Package string // import path, or the slash-separated dir outside a module
	Func    string
	File    string
	Doc     string
}

// DocIndex maps test function names to their documentation. Packages may
// share a function name, so each name holds one entry per package.
type DocIndex map[string][]TestDoc

// Add records doc, replacing an entry for the same package and function.
func (idx DocIndex) Add(doc TestDoc) {
	entries := idx[doc.Func]
	for i, existing := range entries {
		if existing.Package == doc.Package {
			entries[i] = doc
			return
		}
	}
	idx[doc.Func] = append(entries, doc)
}

// LoadDocs parses every *_test.go file in dirs. A dir ending in "/..." is
// walked recursively. Build tags are ignored so e2e-tagged files are seen.
func LoadDocs(dirs ...string) (DocIndex, error) {
	index := DocIndex{}
	fset := token.NewFileSet()
	pkgs := map[string]string{}
	for _, dir := range dirs {
		files, err := testFiles(dir)
		if err != nil {
			return nil, err
		}
		for _, file := range files {
			fileDir := filepath.Dir(file)
			pkg, ok := pkgs[fileDir]
			if !ok {
				pkg = packagePath(fileDir)
				pkgs[fileDir] = pkg
			}
			if err := index.addFile(fset, pkg, file); err != nil {
				return nil, err
			}
		}
	}
	return index, nil
}

// packagePath returns the import path of dir using the nearest go.mod above
// it. Outside a module it falls back to the cleaned, slash-separated dir.
func packagePath(dir string) string {
	fallback := filepath.ToSlash(filepath.Clean(dir))
	abs, err := filepath.Abs(dir)
	if err != nil {
		return fallback
	}
	for root := abs; ; {
		data, err := os.ReadFile(filepath.Join(root, "go.mod"))
		if err == nil {
			module := modfile.ModulePath(data)
			rel, relErr := filepath.Rel(root, abs)
			if module == "" || relErr != nil {
				return fallback
			}
			if rel == "." {
				return module
			}
			return module + "/" + filepath.ToSlash(rel)
		}
		parent := filepath.Dir(root)
		if parent == root {
			return fallback
		}
		root = parent
	}
}

func testFiles(dir string) ([]string, error) {
	if root, ok := strings.CutSuffix(filepath.ToSlash(dir), "/..."); ok {
		var files []string
		err := filepath.WalkDir(filepath.FromSlash(root), func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if !d.IsDir() && strings.HasSuffix(path, "_test.go") {
				files = append(files, path)
			}
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("walk %s: %w", root, err)
		}
		return files, nil
	}

	if _, err := os.Stat(dir); err != nil {
		return nil, fmt.Errorf("test source dir: %w", err)
	}
	files, err := filepath.Glob(filepath.Join(dir, "*_test.go"))
	if err != nil {
		return nil, fmt.Errorf("glob %s: %w", dir, err)
	}
	return files, nil
}

func (idx DocIndex) addFile(fset *token.FileSet, pkg, path string) error {
	file, err := parser.ParseFile(fset, path, nil, parser.ParseComments|parser.SkipObjectResolution)
	if err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}
	for _, decl := range file.Decls {
		fn, ok := decl.(*ast.FuncDecl)
		if !ok || fn.Recv != nil || !strings.HasPrefix(fn.Name.Name, "Test") {
			continue
		}
		doc := ""
		if fn.Doc != nil {
			doc = strings.TrimSpace(fn.Doc.Text())
		}
		idx.Add(TestDoc{
			Package: pkg,
			Func:    fn.Name.Name,
			File:    filepath.Base(path),
			Doc:     doc,
		})
	}
	return nil
}

// Lookup returns the documentation for test in the package pkg, as reported
// by go test. Subtests share their parent function's documentation. An
// empty pkg matches only when a single package defines the function.
func (idx DocIndex) Lookup(pkg, test string) (TestDoc, bool) {
	candidates := idx[parentTest(test)]
	for _, doc := range candidates {
		if samePackage(pkg, doc.Package) {
			return doc, true
		}
	}
	if pkg == "" && len(candidates) == 1 {
		return candidates[0], true
	}
	return TestDoc{}, false
}

// samePackage matches an import path against a doc's package, which may be
// a module-relative dir such as "tests/e2e".
func samePackage(pkg, docPkg string) bool {
	if pkg == docPkg {
		return true
	}
	docPkg = strings.TrimPrefix(docPkg, "./")
	return docPkg != "" && docPkg != "." && strings.HasSuffix(pkg, "/"+docPkg)
}

func parentTest(test string) string {
	name, _, _ := strings.Cut(test, "/")
	return name
}

// FirstLine returns the first non-blank line of doc, trimmed.
func FirstLine(doc string) string {
	for _, line := range strings.Split(doc, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			return line
		}
	}
	return ""
}
