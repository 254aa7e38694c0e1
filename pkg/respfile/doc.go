// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package respfile reads response files: files whose contents stand in for
// command-line text. Files compressed with zstd or gzip are decompressed
// transparently, detected by their magic bytes.
package respfile
