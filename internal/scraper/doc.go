// Package scraper turns a listings page into line sequences for the
// extraction pipeline.
//
// Two captures are produced from every page: the trimmed text of each DOM
// leaf element in document order, and a flat innerText-style split of the
// whole page. Pages are fetched over plain HTTP, or rendered in headless
// Chrome when the listing is built client-side.
package scraper
