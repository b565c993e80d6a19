// Package loader reads declarative form definitions from YAML or JSON and
// turns them into model fields and controller options.
//
// A document looks like:
//
//	labelClass: label
//	fieldWrapperClass: field
//	endpoint: https://example.com/signup
//	fields:
//	  - name: email
//	    kind: email
//	    label: Email
//	    rules:
//	      - kind: required
//	        message: Email is required
//	      - kind: email
package loader
