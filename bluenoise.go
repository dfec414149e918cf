// Copyright (c) 2026 Andrey Kriulin
// Licensed under the MIT License.
// See the LICENSE file in the project root for full license text.

// Package bluenoise generates spatially well-dispersed ("blue noise") point
// sets on the unit sphere and the unit disk with the best-candidate
// algorithm: for every sample, several random candidates are drawn and the
// one farthest from all previously accepted samples wins.
//
// Generation is sequential and fully deterministic for a given seed.
package bluenoise

import "errors"

// ErrInvalidArgument is wrapped by every error reported for bad
// configuration or bad call arguments.
var ErrInvalidArgument = errors.New("bluenoise: invalid argument")

const defaultCandidates = 32
