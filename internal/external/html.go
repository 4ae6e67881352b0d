// Package external holds the vendor adapters (one subpackage per vendor)
// and the helpers they share.
package external

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// blockBreaks keeps words in adjacent blocks apart once tags are dropped
var blockBreaks = strings.NewReplacer(
	"</p>", "</p> ",
	"</div>", "</div> ",
	"</li>", "</li> ",
	"<br>", "<br> ",
	"<br/>", "<br/> ",
	"<br />", "<br /> ",
)

// StripHTML converts an HTML fragment to plain text with collapsed whitespace
func StripHTML(fragment string) string {
	if !strings.ContainsAny(fragment, "<&") {
		return strings.Join(strings.Fields(fragment), " ")
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(blockBreaks.Replace(fragment)))
	if err != nil {
		return strings.Join(strings.Fields(fragment), " ")
	}
	doc.Find("script, style").Remove()
	return strings.Join(strings.Fields(doc.Text()), " ")
}
