// Package curriculum loads the per-subject curriculum outlines.
//
// Each subject declares its outline in "<content>/curriculum/<subject>.hcl"
// as nested node blocks. A node either holds child nodes or is a leaf that
// holds items, and items keep the order they are written in regardless of
// their block type:
//
//	node "1" {
//	  label = "경우의 수"
//	  node "1-2" {
//	    label = "이항정리"
//	    node "1-2-1" {
//	      label = "이항정리와 파스칼의 삼각형"
//	      canva {
//	        title = "이항정리"
//	        src   = "https://www.canva.com/design/X/view?embed"
//	      }
//	      gsheet {
//	        title = "파스칼의 삼각형"
//	        src   = "https://docs.google.com/spreadsheets/d/Y/edit"
//	      }
//	      activity { slug = "pascal_modulo_view" }
//	    }
//	  }
//	}
//
// A child key extends its parent key by one segment joined with '-' or '.'.
// Trees are built once and are read-only afterwards.
package curriculum
