package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/goliatone/go-formkit/pkg/authoring"
	"github.com/goliatone/go-formkit/pkg/openapi"
	"github.com/goliatone/go-formkit/pkg/renderers/html"
	"github.com/goliatone/go-formkit/pkg/renderers/tui"
	"github.com/goliatone/go-formkit/pkg/runtime"
	"github.com/goliatone/go-formkit/pkg/schema"
	"github.com/goliatone/go-formkit/pkg/upload"
)

func main() {
	command := flag.String("cmd", "preview", "command to run: preview, import, template, fill")
	input := flag.String("in", "", "form definition path (json or yaml)")
	output := flag.String("out", "", "output file (stdout if empty)")
	source := flag.String("source", "", "OpenAPI document path (import)")
	operation := flag.String("operation", "", "operationId to import (import)")
	templateID := flag.String("template", "", "quick template id (template)")
	uploadURL := flag.String("upload-url", "", "upload service base URL (fill)")
	flag.Parse()

	ctx := context.Background()

	var err error
	switch *command {
	case "preview":
		err = runPreview(*input, *output)
	case "import":
		err = runImport(ctx, *source, *operation, *output)
	case "template":
		err = runTemplate(*templateID, *output)
	case "fill":
		err = runFill(ctx, *input, *output, *uploadURL)
	default:
		err = fmt.Errorf("unknown command %q", *command)
	}
	if err != nil {
		log.Fatalf("formkit: %v", err)
	}
}

func runPreview(input, output string) error {
	def, err := loadDefinition(input)
	if err != nil {
		return err
	}
	renderer, err := html.New()
	if err != nil {
		return err
	}
	markup, err := renderer.RenderString(def)
	if err != nil {
		return err
	}
	return writeOutput(output, []byte(markup))
}

func runImport(ctx context.Context, source, operation, output string) error {
	if source == "" || operation == "" {
		return fmt.Errorf("import needs -source and -operation")
	}
	doc, err := os.ReadFile(source)
	if err != nil {
		return fmt.Errorf("read %q: %w", source, err)
	}
	def, err := openapi.New(openapi.ImporterOptions{}).Import(ctx, doc, operation)
	if err != nil {
		return err
	}
	return writeDefinition(output, def)
}

func runTemplate(templateID, output string) error {
	if templateID == "" {
		fmt.Println("Available templates:")
		for _, tpl := range authoring.Templates() {
			fmt.Printf("  %-22s %s\n", tpl.ID, tpl.Description)
		}
		return nil
	}
	editor := authoring.NewEditor()
	if err := editor.ApplyTemplate(templateID); err != nil {
		return err
	}
	return writeDefinition(output, editor.Definition())
}

func runFill(ctx context.Context, input, output, uploadURL string) error {
	def, err := loadDefinition(input)
	if err != nil {
		return err
	}

	var opts []runtime.SessionOption
	opts = append(opts, runtime.WithOptionFetcher(runtime.NewHTTPFetcher(nil)))
	if uploadURL != "" {
		uploader, err := upload.NewClient(uploadURL)
		if err != nil {
			return err
		}
		opts = append(opts, runtime.WithUploader(uploader))
	}

	session, err := runtime.New(def, opts...)
	if err != nil {
		return err
	}
	defer session.Close()

	payload, err := tui.NewFiller(session).Run(ctx)
	if err != nil {
		return err
	}
	encoded, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return err
	}
	return writeOutput(output, append(encoded, '\n'))
}

func loadDefinition(input string) (schema.FormDefinition, error) {
	if input == "" {
		return schema.FormDefinition{}, fmt.Errorf("missing -in flag")
	}
	return schema.LoadDefinition(input)
}

func writeDefinition(output string, def schema.FormDefinition) error {
	if output == "" {
		data, err := schema.EncodeDefinition(def, schema.FormatJSON)
		if err != nil {
			return err
		}
		fmt.Println(string(data))
		return nil
	}
	return schema.SaveDefinition(output, def)
}

func writeOutput(output string, data []byte) error {
	if output == "" {
		fmt.Print(string(data))
		return nil
	}
	if err := os.WriteFile(output, data, 0o644); err != nil {
		return fmt.Errorf("write %q: %w", output, err)
	}
	fmt.Printf("Written to %s\n", output)
	return nil
}
