// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package regexcache memoizes compiled regular expressions for the rule-table
// pattern strings. Rule patterns are compiled on first use and shared for the
// process lifetime; the cache is never invalidated.
package regexcache

import (
	"regexp"
	"sync"
)

// Cache is a concurrent pattern-string to compiled-regexp map. A race that
// compiles the same pattern twice is harmless; the loser's result is dropped.
type Cache struct {
	mu sync.RWMutex
	m  map[string]*regexp.Regexp
}

// New returns an empty cache.
func New() *Cache {
	return &Cache{m: make(map[string]*regexp.Regexp)}
}

// Get returns the compiled form of pattern, compiling and storing it on first
// use. Rule data is validated at repository load time, so a pattern that does
// not compile here is a programming error and panics.
func (c *Cache) Get(pattern string) *regexp.Regexp {
	c.mu.RLock()
	re, ok := c.m[pattern]
	c.mu.RUnlock()
	if ok {
		return re
	}

	re = regexp.MustCompile(pattern)

	c.mu.Lock()
	if prev, ok := c.m[pattern]; ok {
		re = prev
	} else {
		c.m[pattern] = re
	}
	c.mu.Unlock()
	return re
}

// GetFullMatch returns a matcher for pattern anchored at both ends, so that
// rule patterns written as fragments only match the entire input.
func (c *Cache) GetFullMatch(pattern string) *regexp.Regexp {
	return c.Get("^(?:" + pattern + ")$")
}

// GetPrefix returns a matcher for pattern anchored at the start only, used
// for prefix stripping (IDD, national prefix, leading digits).
func (c *Cache) GetPrefix(pattern string) *regexp.Regexp {
	return c.Get("^(?:" + pattern + ")")
}

// Size reports the number of cached patterns.
func (c *Cache) Size() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.m)
}
