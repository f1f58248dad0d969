package aprstx

/*-------------------------------------------------------------
 *
 * Purpose:	Convert a frame to a stream of bits.
 *
 *		For AX.25, send:
 *			opening flag(s)
 *			bit stuffed data including FCS
 *			closing flag(s)
 *		NRZI encoding for everything, flags included.
 *
 * Description:	Bits go out LSB first within each byte.  Within the
 *		data, a 0 is inserted after every run of five 1 bits so
 *		the 01111110 flag pattern can only appear at the flags
 *		themselves.  Flags are sent unstuffed and reset the
 *		run counter.
 *
 *--------------------------------------------------------------*/

import "fmt"

type bit_stream_t struct {
	bits  []bool
	stuff int /* Count of consecutive 1 bits, to know when to break up a long run. */
}

func (bs *bit_stream_t) send_flag() {
	var x = byte(HDLC_FLAG)
	for i := 0; i < 8; i++ {
		bs.bits = append(bs.bits, x&1 > 0)
		x >>= 1
	}
	bs.stuff = 0
}

func (bs *bit_stream_t) send_data_byte(x byte) {
	for i := 0; i < 8; i++ {
		if x&1 > 0 {
			bs.bits = append(bs.bits, true)
			bs.stuff++
			if bs.stuff == 5 {
				bs.bits = append(bs.bits, false)
				bs.stuff = 0
			}
		} else {
			bs.bits = append(bs.bits, false)
			bs.stuff = 0
		}
		x >>= 1
	}
}

/*-------------------------------------------------------------
 *
 * Name:	hdlc_serialize_frame
 *
 * Purpose:	Produce the complete logical bit sequence for one frame.
 *
 * Inputs:	fbuf	- Frame bytes including FCS.
 *
 *		txdelay	- Number of opening flags, minimum 1.
 *			  More gives the receiver longer to sync.
 *
 *		txtail	- Number of closing flags, minimum 1.
 *
 * Returns:	Logical bits, LSB first, stuffed, flag framed.
 *
 *--------------------------------------------------------------*/

func hdlc_serialize_frame(fbuf []byte, txdelay int, txtail int) []bool {

	if txdelay < 1 {
		txdelay = 1
	}
	if txtail < 1 {
		txtail = 1
	}

	var bs bit_stream_t

	for i := 0; i < txdelay; i++ {
		bs.send_flag()
	}
	for _, b := range fbuf {
		bs.send_data_byte(b)
	}
	for i := 0; i < txtail; i++ {
		bs.send_flag()
	}

	return bs.bits
}

/*-------------------------------------------------------------
 *
 * Name:	hdlc_check_stuffing
 *
 * Purpose:	Post-condition check: between the opening and closing
 *		flags there must be no run of six or more 1 bits.
 *
 * Inputs:	bits	- Output of hdlc_serialize_frame.
 *
 *		txdelay, txtail - Flag counts used when serializing.
 *
 * Returns:	nil, or ErrInvariant.  A failure here is a bug in
 *		send_data_byte, never bad user input.
 *
 *--------------------------------------------------------------*/

func hdlc_check_stuffing(bits []bool, txdelay int, txtail int) error {

	/* Same clamping as the serializer, so the flag regions line up. */
	if txdelay < 1 {
		txdelay = 1
	}
	if txtail < 1 {
		txtail = 1
	}

	var start = txdelay * 8
	var end = len(bits) - txtail*8

	var run = 0
	for i := start; i < end; i++ {
		if bits[i] {
			run++
			if run >= 6 {
				return fmt.Errorf("%w: %d consecutive one bits at offset %d", ErrInvariant, run, i)
			}
		} else {
			run = 0
		}
	}
	return nil
}

/*
 * NRZI encoding.
 * data 1 bit -> no change.
 * data 0 bit -> invert signal.
 */

func nrzi_encode(bits []bool) []bool {

	var out = make([]bool, 0, len(bits))
	var current = true /* Initial line level.  Arbitrary but fixed per frame. */

	for _, b := range bits {
		if !b {
			current = !current
		}
		out = append(out, current)
	}
	return out
}
