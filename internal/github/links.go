package github

import (
	"fmt"
	"strings"
)

// ParseLinkHeader parses a GitHub Link response header of the form
//
//	<https://api.github.com/...&page=2>; rel="next", <...&page=9>; rel="last"
//
// into a rel -> URL map. A missing "next" key means there are no further
// pages; callers treat that as termination, not an error.
func ParseLinkHeader(header string) (map[string]string, error) {
	links := make(map[string]string)

	for _, part := range strings.Split(header, ",") {
		section := strings.SplitN(part, ";", 2)
		if len(section) != 2 {
			return nil, fmt.Errorf("malformed Link segment: %q", part)
		}

		url := strings.TrimSpace(section[0])
		if !strings.HasPrefix(url, "<") || !strings.HasSuffix(url, ">") {
			return nil, fmt.Errorf("malformed Link URL: %q", url)
		}
		url = url[1 : len(url)-1]

		rel := strings.TrimSpace(section[1])
		if !strings.HasPrefix(rel, "rel=") {
			return nil, fmt.Errorf("malformed Link rel: %q", section[1])
		}
		rel = strings.Trim(strings.TrimPrefix(rel, "rel="), `"`)

		links[rel] = url
	}

	return links, nil
}
