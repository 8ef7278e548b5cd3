// Package replacexml decodes the XML replacement reports produced by
// clang-format's -output-replacements-xml mode.
//
// For a batch of N input files the formatter writes N documents to stdout,
// back to back, each opened by the literal "<?xml" prologue:
//
//	<?xml version='1.0'?>
//	<replacements xml:space='preserve' incomplete_format='false'>
//	<replacement offset='5' length='3'>&#10;  </replacement>
//	</replacements>
//
// The decoder splits the blob on that prologue and parses every segment
// independently. Document i always describes file i of the submitted batch;
// the pairing is positional and never reconstructed from anything else.
package replacexml

// Replacement is a single edit the formatter wants applied: replace Length
// bytes starting at byte Offset with Text.
type Replacement struct {
	Offset int    `xml:"offset,attr"`
	Length int    `xml:"length,attr"`
	Text   string `xml:",chardata"`
}

// FileReport holds the decoded replacements for one input file, in ascending
// offset order.
type FileReport struct {
	Path             string
	Replacements     []Replacement
	IncompleteFormat bool // formatter gave up mid-file (incomplete_format='true')
	Reordered        bool // report entries arrived out of ascending offset order
}

// Conforming reports whether the formatter had no edits for the file.
func (r *FileReport) Conforming() bool {
	return len(r.Replacements) == 0
}
