// Copyright 2016 Google Inc. All Rights Reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package merkledb

import "testing"

func TestHashIsZero(t *testing.T) {
	var zero Hash
	if !zero.IsZero() {
		t.Error("zero-value Hash.IsZero() = false, want true")
	}
	nonZero := Hash{1}
	if nonZero.IsZero() {
		t.Error("non-zero Hash.IsZero() = true, want false")
	}
}

func TestHashStringIsHex(t *testing.T) {
	h := Hash{0xde, 0xad, 0xbe, 0xef}
	want := "deadbeef" + "00000000000000000000000000000000000000000000000000000000"
	if got := h.String(); got != want {
		t.Errorf("Hash.String() = %q, want %q", got, want)
	}
}

func TestManifestCloneIsIndependent(t *testing.T) {
	m := Manifest{Version: 1, Tags: map[string]string{"a": "1"}}
	clone := m.Clone()
	clone.Tags["a"] = "2"
	if m.Tags["a"] != "1" {
		t.Error("Manifest.Clone() shares the Tags map with the original")
	}
}
