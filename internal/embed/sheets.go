package embed

import (
	"net/url"
	"strings"
)

const sheetsHost = "docs.google.com"

// sheetRef is a parsed Google Sheets document URL.
type sheetRef struct {
	id        string // document ID, or the published ID when published
	published bool   // "/spreadsheets/d/e/<ID>/..." form
	gid       string
	sheet     string
	u         *url.URL
}

// parseSheet recognizes docs.google.com spreadsheet URLs. ok is false for
// anything else.
func parseSheet(raw string) (ref sheetRef, ok bool) {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil || !strings.EqualFold(u.Hostname(), sheetsHost) {
		return sheetRef{}, false
	}
	segs := strings.Split(strings.Trim(u.Path, "/"), "/")
	if len(segs) < 3 || segs[0] != "spreadsheets" || segs[1] != "d" {
		return sheetRef{}, false
	}
	ref = sheetRef{id: segs[2], u: u}
	if segs[2] == "e" {
		if len(segs) < 4 {
			return sheetRef{}, false
		}
		ref.id, ref.published = segs[3], true
	}

	q := u.Query()
	ref.gid = q.Get("gid")
	if ref.gid == "" {
		frag, _ := url.ParseQuery(u.Fragment)
		ref.gid = frag.Get("gid")
	}
	ref.sheet = q.Get("sheet")
	return ref, true
}

func (r sheetRef) isCSV() bool {
	q := r.u.Query()
	return q.Get("format") == "csv" || q.Get("tqx") == "out:csv" || q.Get("output") == "csv"
}

// SheetCSV converts a Google Sheets URL into a URL that downloads one sheet
// as CSV:
//
//	/spreadsheets/d/<ID>/edit#gid=<GID>   -> /spreadsheets/d/<ID>/export?format=csv&gid=<GID>
//	/spreadsheets/d/<ID>/...?sheet=<NAME> -> /spreadsheets/d/<ID>/gviz/tq?tqx=out:csv&sheet=<NAME>
//	/spreadsheets/d/e/<PUB>/pubhtml       -> /spreadsheets/d/e/<PUB>/pub?output=csv
//
// The gid defaults to 0. URLs that already export CSV and URLs that are not
// Google Sheets documents are returned unchanged.
func SheetCSV(raw string) string {
	ref, ok := parseSheet(raw)
	if !ok || ref.isCSV() {
		return raw
	}

	base := "https://" + sheetsHost + "/spreadsheets/d/"
	switch {
	case ref.published:
		params := url.Values{"output": {"csv"}}
		if ref.gid != "" {
			params.Set("gid", ref.gid)
		}
		return base + "e/" + ref.id + "/pub?" + params.Encode()
	case ref.sheet != "":
		return base + ref.id + "/gviz/tq?tqx=out:csv&sheet=" + url.QueryEscape(ref.sheet)
	default:
		gid := ref.gid
		if gid == "" {
			gid = "0"
		}
		return base + ref.id + "/export?" + url.Values{"format": {"csv"}, "gid": {gid}}.Encode()
	}
}

// SheetPreview converts a Google Sheets edit URL into the chrome-less
// preview page used for embedding. Published and non-Sheets URLs are
// returned unchanged.
func SheetPreview(raw string) string {
	ref, ok := parseSheet(raw)
	if !ok || ref.published {
		return raw
	}
	out := "https://" + sheetsHost + "/spreadsheets/d/" + ref.id + "/preview"
	if ref.gid != "" {
		out += "#gid=" + url.QueryEscape(ref.gid)
	}
	return out
}
