// Copyright 2016 Maarten Everts. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package gsjoin implements the user side of the join protocol of a BN254
// group signature scheme. StartJoin creates a fresh membership secret and a
// join request proving knowledge of it; FinishJoin validates the credential
// bundle returned by the issuer. See gsjoin_test.go for a complete round trip.
package gsjoin
