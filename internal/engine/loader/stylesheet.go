package loader

import (
	"context"
	"fmt"
	"strconv"

	"go.trai.ch/pack/internal/core/domain"
	"go.trai.ch/pack/internal/core/ports"
)

const linkSnippet = `
const linkTag = document.createElement("link");
linkTag.rel = "stylesheet";
linkTag.type = "text/css";
linkTag.href = %s;
document.body.append(linkTag);
`

// StylesheetLoader emits stylesheets and links them with a <link> tag
// appended when the module is first required.
type StylesheetLoader struct {
	*emitter
}

// NewStylesheetLoader creates a StylesheetLoader writing into outputDir.
func NewStylesheetLoader(fsys ports.FileSystem, tel ports.Telemetry, outputDir string) *StylesheetLoader {
	return &StylesheetLoader{emitter: newEmitter(fsys, tel, outputDir)}
}

// Kind returns domain.LoaderStylesheet.
func (l *StylesheetLoader) Kind() domain.LoaderKind {
	return domain.LoaderStylesheet
}

// Load emits the stylesheet and returns the snippet that links it.
func (l *StylesheetLoader) Load(ctx context.Context, req Request) (Result, error) {
	name, err := l.emit(ctx, req.Path)
	if err != nil {
		return Result{}, err
	}
	return Result{
		Code:             fmt.Sprintf(linkSnippet, strconv.Quote("/"+name)),
		RequireStatement: domain.RequireByID(req.ID),
	}, nil
}
