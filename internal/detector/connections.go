package detector

// Connection is an edge between two landmark indices of the same group.
type Connection struct {
	From, To int
}

// PoseConnections is the body topology of the MediaPipe pose model.
var PoseConnections = []Connection{
	{0, 1}, {1, 2}, {2, 3}, {3, 7}, {0, 4}, {4, 5}, {5, 6}, {6, 8},
	{9, 10},
	{11, 12}, {11, 13}, {13, 15}, {15, 17}, {15, 19}, {15, 21}, {17, 19},
	{12, 14}, {14, 16}, {16, 18}, {16, 20}, {16, 22}, {18, 20},
	{11, 23}, {12, 24}, {23, 24},
	{23, 25}, {24, 26}, {25, 27}, {26, 28}, {27, 29}, {28, 30},
	{29, 31}, {30, 32}, {27, 31}, {28, 32},
}

// HandConnections is the hand topology shared by both hands.
var HandConnections = []Connection{
	// palm
	{Wrist, ThumbCMC}, {Wrist, IndexMCP}, {MiddleMCP, RingMCP},
	{RingMCP, PinkyMCP}, {IndexMCP, MiddleMCP}, {Wrist, PinkyMCP},
	{ThumbCMC, ThumbMCP}, {ThumbMCP, ThumbIP}, {ThumbIP, ThumbTip},
	{IndexMCP, IndexPIP}, {IndexPIP, IndexDIP}, {IndexDIP, IndexTip},
	{MiddleMCP, MiddlePIP}, {MiddlePIP, MiddleDIP}, {MiddleDIP, MiddleTip},
	{RingMCP, RingPIP}, {RingPIP, RingDIP}, {RingDIP, RingTip},
	{PinkyMCP, PinkyPIP}, {PinkyPIP, PinkyDIP}, {PinkyDIP, PinkyTip},
}

// FaceConnections is the face mesh contour topology: lips, eyes, eyebrows
// and face oval.
var FaceConnections = concatConnections(
	faceLips, faceLeftEye, faceLeftEyebrow, faceRightEye, faceRightEyebrow, faceOval,
)

var faceLips = []Connection{
	{61, 146}, {146, 91}, {91, 181}, {181, 84}, {84, 17}, {17, 314},
	{314, 405}, {405, 321}, {321, 375}, {375, 291}, {61, 185}, {185, 40},
	{40, 39}, {39, 37}, {37, 0}, {0, 267}, {267, 269}, {269, 270},
	{270, 409}, {409, 291}, {78, 95}, {95, 88}, {88, 178}, {178, 87},
	{87, 14}, {14, 317}, {317, 402}, {402, 318}, {318, 324}, {324, 308},
	{78, 191}, {191, 80}, {80, 81}, {81, 82}, {82, 13}, {13, 312},
	{312, 311}, {311, 310}, {310, 415}, {415, 308},
}

var faceLeftEye = []Connection{
	{263, 249}, {249, 390}, {390, 373}, {373, 374}, {374, 380}, {380, 381},
	{381, 382}, {382, 362}, {263, 466}, {466, 388}, {388, 387}, {387, 386},
	{386, 385}, {385, 384}, {384, 398}, {398, 362},
}

var faceLeftEyebrow = []Connection{
	{276, 283}, {283, 282}, {282, 295}, {295, 285}, {300, 293}, {293, 334},
	{334, 296}, {296, 336},
}

var faceRightEye = []Connection{
	{33, 7}, {7, 163}, {163, 144}, {144, 145}, {145, 153}, {153, 154},
	{154, 155}, {155, 133}, {33, 246}, {246, 161}, {161, 160}, {160, 159},
	{159, 158}, {158, 157}, {157, 173}, {173, 133},
}

var faceRightEyebrow = []Connection{
	{46, 53}, {53, 52}, {52, 65}, {65, 55}, {70, 63}, {63, 105},
	{105, 66}, {66, 107},
}

var faceOval = []Connection{
	{10, 338}, {338, 297}, {297, 332}, {332, 284}, {284, 251}, {251, 389},
	{389, 356}, {356, 454}, {454, 323}, {323, 361}, {361, 288}, {288, 397},
	{397, 365}, {365, 379}, {379, 378}, {378, 400}, {400, 377}, {377, 152},
	{152, 148}, {148, 176}, {176, 149}, {149, 150}, {150, 136}, {136, 172},
	{172, 58}, {58, 132}, {132, 93}, {93, 234}, {234, 127}, {127, 162},
	{162, 21}, {21, 54}, {54, 103}, {103, 67}, {67, 109}, {109, 10},
}

func concatConnections(groups ...[]Connection) []Connection {
	var n int
	for _, g := range groups {
		n += len(g)
	}
	out := make([]Connection, 0, n)
	for _, g := range groups {
		out = append(out, g...)
	}
	return out
}
