// Copyright 2023
// SPDX-License-Identifier: Apache-2.0
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package data

import (
	"github.com/alphadose/haxmap"
	"github.com/rs/zerolog/log"
)

// memo is a process-wide key-value cache with no eviction and no expiry.
// Source files are assumed immutable for the life of the process, so values
// are never invalidated. Only successful loads are stored.
type memo[V any] struct {
	name   string
	values *haxmap.Map[string, V]
}

func newMemo[V any](name string) *memo[V] {
	return &memo[V]{
		name:   name,
		values: haxmap.New[string, V](),
	}
}

// Get returns the memoized value for key, calling load on a miss
func (m *memo[V]) Get(key string, load func() (V, error)) (V, error) {
	if val, ok := m.values.Get(key); ok {
		log.Trace().Str("Cache", m.name).Str("Key", key).Msg("cache hit")
		return val, nil
	}

	val, err := load()
	if err != nil {
		return val, err
	}

	m.values.Set(key, val)
	log.Trace().Str("Cache", m.name).Str("Key", key).Msg("cache miss; stored")
	return val, nil
}

// Len returns the number of memoized values
func (m *memo[V]) Len() int {
	return int(m.values.Len())
}
