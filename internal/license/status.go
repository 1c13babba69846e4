// Copyright 2026 The OpenTrusty Authors
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

package license

import (
	"math"
	"time"
)

// Stored statuses
const (
	StatusActive  = "active"
	StatusExpired = "expired"
)

// StatusExpiringSoon is derived by DisplayStatus and never stored
const StatusExpiringSoon = "expiring-soon"

// ExpiringWindow is how close to expiry an active license is reported as expiring soon
const ExpiringWindow = 30 * 24 * time.Hour

// DisplayStatus classifies a license for presentation. A stored status other
// than active wins; otherwise the expiry date decides.
func DisplayStatus(status string, expiry, now time.Time) string {
	if status != StatusActive {
		return status
	}
	if !expiry.After(now) {
		return StatusExpired
	}
	if expiry.Before(now.Add(ExpiringWindow)) {
		return StatusExpiringSoon
	}
	return StatusActive
}

// DaysLeft returns the whole days remaining until expiry, rounded up. Past
// expiry dates yield zero or a negative number.
func DaysLeft(expiry, now time.Time) int {
	return int(math.Ceil(expiry.Sub(now).Hours() / 24))
}
