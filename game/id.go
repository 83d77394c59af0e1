// A fast unique time-based id, after the ObjectId scheme from the mongo
// mgo driver: timestamp, machine, pid, counter.
package game

import (
	"crypto/md5"
	"encoding/binary"
	"fmt"
	"os"
	"sync/atomic"
	"time"
)

var matchIDCounter uint32

var machineID []byte

func initMachineID() {
	var sum [3]byte
	hostname, err := os.Hostname()
	if err != nil {
		panic("failed to get hostname: " + err.Error())
	}
	hw := md5.New()
	hw.Write([]byte(hostname))
	copy(sum[:3], hw.Sum(nil))
	machineID = sum[:]
}

func init() {
	initMachineID()
}

func newMatchID() string {
	b := make([]byte, 12)
	binary.BigEndian.PutUint32(b, uint32(time.Now().Unix()))
	b[4] = machineID[0]
	b[5] = machineID[1]
	b[6] = machineID[2]
	pid := os.Getpid()
	b[7] = byte(pid >> 8)
	b[8] = byte(pid)
	i := atomic.AddUint32(&matchIDCounter, 1)
	b[9] = byte(i >> 16)
	b[10] = byte(i >> 8)
	b[11] = byte(i)
	return fmt.Sprintf("%x", b)
}
