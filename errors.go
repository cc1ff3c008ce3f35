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

import "fmt"

// DeserializeError wraps a failure to decode a value read back from the
// underlying store. It is surfaced verbatim by the Database try_* methods;
// it is never returned from the batch Nodes lookup, which instead reports
// affected keys as absent (see Database.Nodes doc comment).
type DeserializeError struct {
	// What names the value that failed to decode (e.g. "manifest", "root").
	What string
	Err  error
}

func (e *DeserializeError) Error() string {
	return fmt.Sprintf("deserializing %s: %v", e.What, e.Err)
}

func (e *DeserializeError) Unwrap() error {
	return e.Err
}

// NewDeserializeError builds a DeserializeError for the named value.
func NewDeserializeError(what string, err error) *DeserializeError {
	return &DeserializeError{What: what, Err: err}
}
