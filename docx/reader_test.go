package docx

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"errors"
	"reflect"
	"testing"

	"github.com/avolkov/docmsg/model"
)

func xmlName(local string) xml.Name {
	return xml.Name{Local: local}
}

// createTestDOCX assembles a minimal DOCX package in memory.
func createTestDOCX(t *testing.T, content string) []byte {
	t.Helper()
	return createTestDOCXWithRels(t, content, "")
}

// createTestDOCXWithRels assembles a DOCX package with an optional
// word/_rels/document.xml.rels body.
func createTestDOCXWithRels(t *testing.T, content, docRels string) []byte {
	t.Helper()

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)

	contentTypes := `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types">
  <Default Extension="rels" ContentType="application/vnd.openxmlformats-package.relationships+xml"/>
  <Default Extension="xml" ContentType="application/xml"/>
  <Override PartName="/word/document.xml" ContentType="application/vnd.openxmlformats-officedocument.wordprocessingml.document.main+xml"/>
</Types>`
	w, _ := zw.Create("[Content_Types].xml")
	w.Write([]byte(contentTypes))

	rels := `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">
  <Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/officeDocument" Target="word/document.xml"/>
</Relationships>`
	w, _ = zw.Create("_rels/.rels")
	w.Write([]byte(rels))

	document := `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main" xmlns:r="http://schemas.openxmlformats.org/officeDocument/2006/relationships">
  <w:body>` + content + `</w:body>
</w:document>`
	w, _ = zw.Create("word/document.xml")
	w.Write([]byte(document))

	if docRels != "" {
		relsXML := `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">` + docRels + `</Relationships>`
		w, _ = zw.Create("word/_rels/document.xml.rels")
		w.Write([]byte(relsXML))
	}

	zw.Close()
	return buf.Bytes()
}

func TestNewReader(t *testing.T) {
	data := createTestDOCX(t, `<w:p><w:r><w:t>Hello World</w:t></w:r></w:p>`)

	r, err := NewReader(data)
	if err != nil {
		t.Fatalf("NewReader() error = %v", err)
	}
	if r.document == nil {
		t.Error("document should not be nil")
	}
}

func TestNewReader_InvalidZip(t *testing.T) {
	_, err := NewReader([]byte("not a zip file"))
	if err == nil {
		t.Fatal("NewReader() should return error for invalid ZIP")
	}
	if !errors.Is(err, ErrParse) {
		t.Errorf("error should wrap ErrParse, got %v", err)
	}
}

func TestNewReader_MissingDocumentXML(t *testing.T) {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	w, _ := zw.Create("[Content_Types].xml")
	w.Write([]byte(`<?xml version="1.0"?><Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types"></Types>`))
	zw.Close()

	_, err := NewReader(buf.Bytes())
	if err == nil {
		t.Fatal("NewReader() should return error when document.xml is missing")
	}
	if !errors.Is(err, ErrParse) {
		t.Errorf("error should wrap ErrParse, got %v", err)
	}
}

func TestNewReader_MalformedDocumentXML(t *testing.T) {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	w, _ := zw.Create("[Content_Types].xml")
	w.Write([]byte(`<Types/>`))
	w, _ = zw.Create("word/document.xml")
	w.Write([]byte(`<w:document><unclosed`))
	zw.Close()

	_, err := NewReader(buf.Bytes())
	if err == nil {
		t.Fatal("NewReader() should return error for malformed document.xml")
	}
	if !errors.Is(err, ErrParse) {
		t.Errorf("error should wrap ErrParse, got %v", err)
	}
}

func TestReader_Paragraphs(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    []model.Paragraph
	}{
		{
			name:    "simple paragraph",
			content: `<w:p><w:r><w:t>Hello World</w:t></w:r></w:p>`,
			want: []model.Paragraph{
				{Runs: []model.Run{{Text: "Hello World"}}},
			},
		},
		{
			name: "bold and plain runs",
			content: `<w:p>
  <w:r><w:rPr><w:b/></w:rPr><w:t>Hello</w:t></w:r>
  <w:r><w:t xml:space="preserve"> World</w:t></w:r>
</w:p>`,
			want: []model.Paragraph{
				{Runs: []model.Run{
					{Text: "Hello", Style: model.Style{Bold: true}},
					{Text: " World"},
				}},
			},
		},
		{
			name: "all direct formatting flags",
			content: `<w:p><w:r><w:rPr><w:b/><w:i/><w:u w:val="single"/><w:strike/></w:rPr><w:t>x</w:t></w:r></w:p>`,
			want: []model.Paragraph{
				{Runs: []model.Run{
					{Text: "x", Style: model.Style{Bold: true, Italic: true, Underline: true, Strike: true}},
				}},
			},
		},
		{
			name:    "explicitly disabled flags",
			content: `<w:p><w:r><w:rPr><w:b w:val="false"/><w:i w:val="0"/><w:u w:val="none"/></w:rPr><w:t>plain</w:t></w:r></w:p>`,
			want: []model.Paragraph{
				{Runs: []model.Run{{Text: "plain"}}},
			},
		},
		{
			name:    "double strike counts as strike",
			content: `<w:p><w:r><w:rPr><w:dstrike/></w:rPr><w:t>gone</w:t></w:r></w:p>`,
			want: []model.Paragraph{
				{Runs: []model.Run{{Text: "gone", Style: model.Style{Strike: true}}}},
			},
		},
		{
			name:    "empty paragraph preserved",
			content: `<w:p><w:r><w:t>a</w:t></w:r></w:p><w:p/><w:p><w:r><w:t>b</w:t></w:r></w:p>`,
			want: []model.Paragraph{
				{Runs: []model.Run{{Text: "a"}}},
				{},
				{Runs: []model.Run{{Text: "b"}}},
			},
		},
		{
			name:    "tab and break inside run",
			content: `<w:p><w:r><w:t>a</w:t><w:tab/><w:t>b</w:t><w:br/><w:t>c</w:t></w:r></w:p>`,
			want: []model.Paragraph{
				{Runs: []model.Run{{Text: "a    b\nc"}}},
			},
		},
		{
			name:    "zero paragraphs",
			content: ``,
			want:    []model.Paragraph{},
		},
		{
			name:    "run with no text dropped",
			content: `<w:p><w:r></w:r><w:r><w:t>kept</w:t></w:r></w:p>`,
			want: []model.Paragraph{
				{Runs: []model.Run{{Text: "kept"}}},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data := createTestDOCX(t, tt.content)

			r, err := NewReader(data)
			if err != nil {
				t.Fatalf("NewReader() error = %v", err)
			}

			got := r.Paragraphs()
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Paragraphs() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestReader_Hyperlinks(t *testing.T) {
	content := `<w:p>
  <w:r><w:t xml:space="preserve">click </w:t></w:r>
  <w:hyperlink r:id="rId5"><w:r><w:t>here</w:t></w:r></w:hyperlink>
</w:p>`
	docRels := `<Relationship Id="rId5" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/hyperlink" Target="https://example.com" TargetMode="External"/>`

	data := createTestDOCXWithRels(t, content, docRels)
	r, err := NewReader(data)
	if err != nil {
		t.Fatalf("NewReader() error = %v", err)
	}

	want := []model.Paragraph{
		{Runs: []model.Run{
			{Text: "click "},
			{Text: "here", Style: model.Style{URL: "https://example.com"}},
		}},
	}
	if got := r.Paragraphs(); !reflect.DeepEqual(got, want) {
		t.Errorf("Paragraphs() = %+v, want %+v", got, want)
	}
}

// Runs and hyperlinks must keep their document order even when
// interleaved.
func TestReader_InterleavedRunsAndHyperlinks(t *testing.T) {
	content := `<w:p>
  <w:r><w:t>a</w:t></w:r>
  <w:hyperlink r:id="rId1"><w:r><w:t>b</w:t></w:r></w:hyperlink>
  <w:r><w:t>c</w:t></w:r>
  <w:hyperlink r:id="rId2"><w:r><w:t>d</w:t></w:r></w:hyperlink>
</w:p>`
	docRels := `<Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/hyperlink" Target="https://one.example" TargetMode="External"/>
<Relationship Id="rId2" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/hyperlink" Target="https://two.example" TargetMode="External"/>`

	data := createTestDOCXWithRels(t, content, docRels)
	r, err := NewReader(data)
	if err != nil {
		t.Fatalf("NewReader() error = %v", err)
	}

	want := []model.Paragraph{
		{Runs: []model.Run{
			{Text: "a"},
			{Text: "b", Style: model.Style{URL: "https://one.example"}},
			{Text: "c"},
			{Text: "d", Style: model.Style{URL: "https://two.example"}},
		}},
	}
	if got := r.Paragraphs(); !reflect.DeepEqual(got, want) {
		t.Errorf("Paragraphs() = %+v, want %+v", got, want)
	}
}

// A hyperlink whose relationship is missing degrades to plain runs.
func TestReader_UnresolvedHyperlink(t *testing.T) {
	content := `<w:p><w:hyperlink r:id="rId9"><w:r><w:t>orphan</w:t></w:r></w:hyperlink></w:p>`

	data := createTestDOCX(t, content)
	r, err := NewReader(data)
	if err != nil {
		t.Fatalf("NewReader() error = %v", err)
	}

	want := []model.Paragraph{
		{Runs: []model.Run{{Text: "orphan"}}},
	}
	if got := r.Paragraphs(); !reflect.DeepEqual(got, want) {
		t.Errorf("Paragraphs() = %+v, want %+v", got, want)
	}
}

func TestReader_Text(t *testing.T) {
	tests := []struct {
		name     string
		content  string
		expected string
	}{
		{
			name:     "simple paragraph",
			content:  `<w:p><w:r><w:t>Hello World</w:t></w:r></w:p>`,
			expected: "Hello World",
		},
		{
			name: "multiple paragraphs",
			content: `<w:p><w:r><w:t>First paragraph</w:t></w:r></w:p>
<w:p><w:r><w:t>Second paragraph</w:t></w:r></w:p>`,
			expected: "First paragraph\nSecond paragraph",
		},
		{
			name: "multiple runs",
			content: `<w:p>
  <w:r><w:t xml:space="preserve">Hello </w:t></w:r>
  <w:r><w:t>World</w:t></w:r>
</w:p>`,
			expected: "Hello World",
		},
		{
			name:     "empty document",
			content:  ``,
			expected: "",
		},
		{
			name:     "preserved spaces",
			content:  `<w:p><w:r><w:t xml:space="preserve">Hello   World</w:t></w:r></w:p>`,
			expected: "Hello   World",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data := createTestDOCX(t, tt.content)

			r, err := NewReader(data)
			if err != nil {
				t.Fatalf("NewReader() error = %v", err)
			}

			if got := r.Text(); got != tt.expected {
				t.Errorf("Text() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestToggleOn(t *testing.T) {
	present := func(val string) toggleXML {
		return toggleXML{XMLName: xmlName("b"), Val: val}
	}

	tests := []struct {
		name   string
		toggle toggleXML
		want   bool
	}{
		{"absent", toggleXML{}, false},
		{"present no val", present(""), true},
		{"val true", present("true"), true},
		{"val single", present("single"), true},
		{"val false", present("false"), false},
		{"val 0", present("0"), false},
		{"val none", present("none"), false},
		{"val FALSE", present("FALSE"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.toggle.on(); got != tt.want {
				t.Errorf("on() = %v, want %v", got, tt.want)
			}
		})
	}
}
