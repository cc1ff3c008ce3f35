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

// Package merkledb defines the storage capability and core node/patch types
// shared by the Merkle tree persistence layers in this module.
package merkledb

import "encoding/hex"

// Hash is a 32-byte digest produced by a HashCapability implementation.
type Hash [32]byte

// String returns the hex encoding of h, for logging and error messages.
func (h Hash) String() string {
	return hex.EncodeToString(h[:])
}

// IsZero reports whether h is the zero hash, used as a defensive default
// when a sibling hash cannot be located.
func (h Hash) IsZero() bool {
	return h == Hash{}
}
