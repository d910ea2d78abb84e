// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package hub

import "code.hybscloud.com/atomix"

// Serial identifies a hub or a cursor in logs.
// Hubs and cursors draw from one process-wide monotonic sequence.
type Serial = uint32

var counter atomix.Uint32

func nextSerial() Serial {
	return counter.Add(1)
}
