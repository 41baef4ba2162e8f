// Copyright Consensys Software Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with
// the License. You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on
// an "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied. See the License for the
// specific language governing permissions and limitations under the License.
//
// SPDX-License-Identifier: Apache-2.0
package authority

import (
	"os"
	"path/filepath"

	"github.com/consensys/go-ionschema/pkg/element"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

// DocumentAuthority resolves schema identifiers to Ion document contents.
// An authority which does not know a given id reports an empty element
// sequence rather than an error, allowing the schema system to fall through
// to the next authority in its list.
type DocumentAuthority interface {
	// Elements returns the top-level values of the document identified by
	// id, or an empty slice if this authority has no such document.
	Elements(id string) ([]element.Element, error)
}

// FileSystemDocumentAuthority resolves schema identifiers against a base
// directory on the local file system.
type FileSystemDocumentAuthority struct {
	baseDir string
}

// NewFileSystemDocumentAuthority constructs an authority rooted at the
// given directory.
func NewFileSystemDocumentAuthority(baseDir string) *FileSystemDocumentAuthority {
	return &FileSystemDocumentAuthority{baseDir}
}

// BaseDir returns the directory this authority is rooted at.
func (a *FileSystemDocumentAuthority) BaseDir() string {
	return a.baseDir
}

// Elements implements DocumentAuthority.  A missing file yields an empty
// sequence; any other I/O failure is an error.
func (a *FileSystemDocumentAuthority) Elements(id string) ([]element.Element, error) {
	path := filepath.Join(a.baseDir, id)
	//
	contents, err := os.ReadFile(path)
	//
	switch {
	case os.IsNotExist(err):
		log.Debugf("authority %s has no document for %s", a.baseDir, id)
		return nil, nil
	case err != nil:
		return nil, errors.Wrapf(err, "reading schema %s", id)
	}
	//
	return element.ReadBytes(contents)
}

// MapDocumentAuthority resolves schema identifiers against an in-memory
// mapping from id to Ion text.  Useful for tests and embedded schemas.
type MapDocumentAuthority struct {
	documents map[string]string
}

// NewMapDocumentAuthority constructs an authority over the given documents.
func NewMapDocumentAuthority(documents map[string]string) *MapDocumentAuthority {
	return &MapDocumentAuthority{documents}
}

// Elements implements DocumentAuthority.
func (a *MapDocumentAuthority) Elements(id string) ([]element.Element, error) {
	doc, ok := a.documents[id]
	if !ok {
		return nil, nil
	}
	//
	return element.ReadString(doc)
}
