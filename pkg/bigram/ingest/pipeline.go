package ingest

// Pipeline turns a document into corpus units:
// text → (html stripping) → tokenization → segmentation
type Pipeline struct {
	tokenizer *Tokenizer
	segmenter Segmenter
}

// NewPipeline creates an ingestion pipeline with the given components
func NewPipeline(tokenizer *Tokenizer, segmenter Segmenter) *Pipeline {
	if tokenizer == nil {
		tokenizer = NewTokenizer(nil)
	}
	if segmenter == nil {
		segmenter = DocumentSegmenter{}
	}
	return &Pipeline{
		tokenizer: tokenizer,
		segmenter: segmenter,
	}
}

// ProcessedDoc represents a document after ingestion processing
type ProcessedDoc struct {
	Tokens []string
	Units  [][]string
}

// Process runs a document through the pipeline.
func (p *Pipeline) Process(d Doc) ProcessedDoc {
	body := d.Body
	if d.HTML {
		body = StripHTML(body)
	}

	text := body
	if d.Title != "" {
		text = d.Title + "\n" + body
	}

	tokens := p.tokenizer.Tokenize(text)
	return ProcessedDoc{
		Tokens: tokens,
		Units:  p.segmenter.Segment(tokens),
	}
}
