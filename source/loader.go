// This file is part of intscript - https://github.com/mbrt/intscript
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

package source

import (
	"os"

	"github.com/pkg/errors"
)

// Load parses filename and every module it transitively imports, keyed by
// resolved file path. It fails with a wrapped error naming the missing file
// if an import cannot be found on disk.
func Load(filename string) (map[string]*Module, error) {
	modules := make(map[string]*Module)
	queue := []string{filename}
	for len(queue) > 0 {
		path := queue[0]
		queue = queue[1:]
		if _, ok := modules[path]; ok {
			continue
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, errors.Wrapf(err, "cannot find dependency %s", path)
		}
		module, err := Parse(path, string(data))
		if err != nil {
			return nil, err
		}
		modules[path] = module
		for _, imp := range module.Imports {
			queue = append(queue, imp.Resolve(module.Context()))
		}
	}
	return modules, nil
}
