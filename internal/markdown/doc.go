// Package markdown turns Markdown files with YAML front matter into mini-site
// pages, and renders Markdown text sections to HTML with goldmark.
package markdown
