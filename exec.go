// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package hub

import (
	"code.hybscloud.com/kont"
)

// Exec runs a Cont-world hub protocol on p.
// Take suspends in Cursor.Advance and Emit suspends wherever the sink's
// Next does, so Exec blocks the calling goroutine without spinning.
func Exec[R any](p *Port, protocol kont.Eff[R]) R {
	h := portHandler[R]{ctx: &p.ctx}
	return kont.Handle(protocol, h)
}
