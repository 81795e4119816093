// Package countrycodes provides an embedded list of international dialing
// codes, search helpers and a small net/http handler returning JSON options
// for the country code dropdown.
//
// The default handler responds to GET and HEAD requests and supports query and
// limit parameters to filter results. The backing data is loaded from
// data/country_codes.txt.
package countrycodes
