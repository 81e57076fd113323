package av1

// Default CDF tables for the non-coefficient syntax elements, verbatim
// default, av1_decode_tile.c (kDefaultPartition*/Skip/YMode/UvMode/
// AngleDelta/Cfl*/FilterIntra*/Palette*/SegmentId/Tx*Cdf).

var defaultPartitionW8Cdf = [4][5]uint16{
	{19132, 25510, 30392, 32768, 0},
	{13928, 19855, 28540, 32768, 0},
	{12522, 23679, 28629, 32768, 0},
	{9896, 18783, 25853, 32768, 0},
}

var defaultPartitionW16Cdf = [4][11]uint16{
	{15597, 20929, 24571, 26706, 27664, 28821, 29601, 30571, 31902, 32768, 0},
	{7925, 11043, 16785, 22470, 23971, 25043, 26651, 28701, 29834, 32768, 0},
	{5414, 13269, 15111, 20488, 22360, 24500, 25537, 26336, 32117, 32768, 0},
	{2662, 6362, 8614, 20860, 23053, 24778, 26436, 27829, 31171, 32768, 0},
}

var defaultPartitionW32Cdf = [4][11]uint16{
	{18462, 20920, 23124, 27647, 28227, 29049, 29519, 30178, 31544, 32768, 0},
	{7689, 9060, 12056, 24992, 25660, 26182, 26951, 28041, 29052, 32768, 0},
	{6015, 9009, 10062, 24544, 25409, 26545, 27071, 27526, 32047, 32768, 0},
	{1394, 2208, 2796, 28614, 29061, 29466, 29840, 30185, 31899, 32768, 0},
}

var defaultPartitionW64Cdf = [4][11]uint16{
	{20137, 21547, 23078, 29566, 29837, 30261, 30524, 30892, 31724, 32768, 0},
	{6732, 7490, 9497, 27944, 28250, 28515, 28969, 29630, 30104, 32768, 0},
	{5945, 7663, 8348, 28683, 29117, 29749, 30064, 30298, 32238, 32768, 0},
	{870, 1212, 1487, 31198, 31394, 31574, 31743, 31881, 32332, 32768, 0},
}

var defaultPartitionW128Cdf = [4][9]uint16{
	{27899, 28219, 28529, 32484, 32539, 32619, 32639, 32768, 0},
	{6607, 6990, 8268, 32060, 32219, 32338, 32371, 32768, 0},
	{5429, 6676, 7122, 32027, 32227, 32531, 32582, 32768, 0},
	{711, 966, 1172, 32448, 32538, 32617, 32664, 32768, 0},
}

var defaultSkipCdf = [3][3]uint16{
	{31671, 32768, 0},
	{16515, 32768, 0},
	{4576, 32768, 0},
}

var defaultDeltaQCdf = [5]uint16{28160, 32120, 32677, 32768, 0}
var defaultDeltaLFCdf = [5]uint16{28160, 32120, 32677, 32768, 0}

var defaultYModeCdf = [4][14]uint16{
	{22801, 23489, 24293, 24756, 25601, 26123, 26606, 27418, 27945, 29228, 29685, 30349, 32768, 0},
	{18673, 19845, 22631, 23318, 23950, 24649, 25527, 27364, 28152, 29701, 29984, 30852, 32768, 0},
	{19770, 20979, 23396, 23939, 24241, 24654, 25136, 27073, 27830, 29360, 29730, 30659, 32768, 0},
	{20155, 21301, 22838, 23178, 23261, 23533, 23703, 24804, 25352, 26575, 27016, 28049, 32768, 0},
}

var defaultUVModeCflNotAllowedCdf = [13][14]uint16{
	{22631, 24152, 25378, 25661, 25986, 26520, 27055, 27923, 28244, 30059, 30941, 31961, 32768, 0},
	{9513, 26881, 26973, 27046, 27118, 27664, 27739, 27824, 28359, 29505, 29800, 31796, 32768, 0},
	{9845, 9915, 28663, 28704, 28757, 28780, 29198, 29822, 29854, 30764, 31777, 32029, 32768, 0},
	{13639, 13897, 14171, 25331, 25606, 25727, 25953, 27148, 28577, 30612, 31355, 32493, 32768, 0},
	{9764, 9835, 9930, 9954, 25386, 27053, 27958, 28148, 28243, 31101, 31744, 32363, 32768, 0},
	{11825, 13589, 13677, 13720, 15048, 29213, 29301, 29458, 29711, 31161, 31441, 32550, 32768, 0},
	{14175, 14399, 16608, 16821, 17718, 17775, 28551, 30200, 30245, 31837, 32342, 32667, 32768, 0},
	{12885, 13038, 14978, 15590, 15673, 15748, 16176, 29128, 29267, 30643, 31961, 32461, 32768, 0},
	{12026, 13661, 13874, 15305, 15490, 15726, 15995, 16273, 28443, 30388, 30767, 32416, 32768, 0},
	{19052, 19840, 20579, 20916, 21150, 21467, 21885, 22719, 23174, 28861, 30379, 32175, 32768, 0},
	{18627, 19649, 20974, 21219, 21492, 21816, 22199, 23119, 23527, 27053, 31397, 32148, 32768, 0},
	{17026, 19004, 19997, 20339, 20586, 21103, 21349, 21907, 22482, 25896, 26541, 31819, 32768, 0},
	{12124, 13759, 14959, 14992, 15007, 15051, 15078, 15166, 15255, 15753, 16039, 16606, 32768, 0},
}

var defaultUVModeCflAllowedCdf = [13][15]uint16{
	{10407, 11208, 12900, 13181, 13823, 14175, 14899, 15656, 15986, 20086, 20995, 22455, 24212, 32768, 0},
	{4532, 19780, 20057, 20215, 20428, 21071, 21199, 21451, 22099, 24228, 24693, 27032, 29472, 32768, 0},
	{5273, 5379, 20177, 20270, 20385, 20439, 20949, 21695, 21774, 23138, 24256, 24703, 26679, 32768, 0},
	{6740, 7167, 7662, 14152, 14536, 14785, 15034, 16741, 18371, 21520, 22206, 23389, 24182, 32768, 0},
	{4987, 5368, 5928, 6068, 19114, 20315, 21857, 22253, 22411, 24911, 25380, 26027, 26376, 32768, 0},
	{5370, 6889, 7247, 7393, 9498, 21114, 21402, 21753, 21981, 24780, 25386, 26517, 27176, 32768, 0},
	{4816, 4961, 7204, 7326, 8765, 8930, 20169, 20682, 20803, 23188, 23763, 24455, 24940, 32768, 0},
	{6608, 6740, 8529, 9049, 9257, 9356, 9735, 18827, 19059, 22336, 23204, 23964, 24793, 32768, 0},
	{5998, 7419, 7781, 8933, 9255, 9549, 9753, 10417, 18898, 22494, 23139, 24764, 25989, 32768, 0},
	{10660, 11298, 12550, 12957, 13322, 13624, 14040, 15004, 15534, 20714, 21789, 23443, 24861, 32768, 0},
	{10522, 11530, 12552, 12963, 13378, 13779, 14245, 15235, 15902, 20102, 22696, 23774, 25838, 32768, 0},
	{10099, 10691, 12639, 13049, 13386, 13665, 14125, 15163, 15636, 19676, 20474, 23519, 25208, 32768, 0},
	{3144, 5087, 7382, 7504, 7593, 7690, 7801, 8064, 8232, 9248, 9875, 10521, 29048, 32768, 0},
}

var defaultAngleDeltaCdf = [8][8]uint16{
	{2180, 5032, 7567, 22776, 26989, 30217, 32768, 0},
	{2301, 5608, 8801, 23487, 26974, 30330, 32768, 0},
	{3780, 11018, 13699, 19354, 23083, 31286, 32768, 0},
	{4581, 11226, 15147, 17138, 21834, 28397, 32768, 0},
	{1737, 10927, 14509, 19588, 22745, 28823, 32768, 0},
	{2664, 10176, 12485, 17650, 21600, 30495, 32768, 0},
	{2240, 11096, 15453, 20341, 22561, 28917, 32768, 0},
	{3605, 10428, 12459, 17676, 21244, 30655, 32768, 0},
}

var defaultCflSignCdf = [9]uint16{1418, 2123, 13340, 18405, 26972, 28343, 32294, 32768, 0}

var defaultCflAlphaCdf = [6][17]uint16{
	{7637, 20719, 31401, 32481, 32657, 32688, 32692, 32696, 32700, 32704, 32708, 32712, 32716, 32720, 32724, 32768, 0},
	{14365, 23603, 28135, 31168, 32167, 32395, 32487, 32573, 32620, 32647, 32668, 32672, 32676, 32680, 32684, 32768, 0},
	{11532, 22380, 28445, 31360, 32349, 32523, 32584, 32649, 32673, 32677, 32681, 32685, 32689, 32693, 32697, 32768, 0},
	{26990, 31402, 32282, 32571, 32692, 32696, 32700, 32704, 32708, 32712, 32716, 32720, 32724, 32728, 32732, 32768, 0},
	{17248, 26058, 28904, 30608, 31305, 31877, 32126, 32321, 32394, 32464, 32516, 32560, 32576, 32593, 32622, 32768, 0},
	{14738, 21678, 25779, 27901, 29024, 30302, 30980, 31843, 32144, 32413, 32520, 32594, 32622, 32656, 32660, 32768, 0},
}

var defaultFilterIntraModeCdf = [6]uint16{8949, 12776, 17211, 29558, 32768, 0}

var defaultFilterIntraCdf = [22][3]uint16{
	{4621, 32768, 0}, {6743, 32768, 0}, {5893, 32768, 0}, {7866, 32768, 0},
	{12551, 32768, 0}, {9394, 32768, 0}, {12408, 32768, 0}, {14301, 32768, 0},
	{12756, 32768, 0}, {22343, 32768, 0}, {16384, 32768, 0}, {16384, 32768, 0},
	{16384, 32768, 0}, {16384, 32768, 0}, {16384, 32768, 0}, {16384, 32768, 0},
	{12770, 32768, 0}, {10368, 32768, 0}, {20229, 32768, 0}, {18101, 32768, 0},
	{16384, 32768, 0}, {16384, 32768, 0},
}

var defaultPaletteYModeCdf = [7][3][3]uint16{
	{{31676, 32768, 0}, {3419, 32768, 0}, {1261, 32768, 0}},
	{{31912, 32768, 0}, {2859, 32768, 0}, {980, 32768, 0}},
	{{31823, 32768, 0}, {3400, 32768, 0}, {781, 32768, 0}},
	{{32030, 32768, 0}, {3561, 32768, 0}, {904, 32768, 0}},
	{{32309, 32768, 0}, {7337, 32768, 0}, {1462, 32768, 0}},
	{{32265, 32768, 0}, {4015, 32768, 0}, {1521, 32768, 0}},
	{{32450, 32768, 0}, {7946, 32768, 0}, {129, 32768, 0}},
}

var defaultPaletteUVModeCdf = [2][3]uint16{
	{32461, 32768, 0},
	{21488, 32768, 0},
}

var defaultPaletteYSizeCdf = [7][8]uint16{
	{7952, 13000, 18149, 21478, 25527, 29241, 32768, 0},
	{7139, 11421, 16195, 19544, 23666, 28073, 32768, 0},
	{7788, 12741, 17325, 20500, 24315, 28530, 32768, 0},
	{8271, 14064, 18246, 21564, 25071, 28533, 32768, 0},
	{12725, 19180, 21863, 24839, 27535, 30120, 32768, 0},
	{9711, 14888, 16923, 21052, 25661, 27875, 32768, 0},
	{14940, 20797, 21678, 24186, 27033, 28999, 32768, 0},
}

var defaultPaletteUVSizeCdf = [7][8]uint16{
	{8713, 19979, 27128, 29609, 31331, 32272, 32768, 0},
	{5839, 15573, 23581, 26947, 29848, 31700, 32768, 0},
	{4426, 11260, 17999, 21483, 25863, 29430, 32768, 0},
	{3228, 9464, 14993, 18089, 22523, 27420, 32768, 0},
	{3768, 8886, 13091, 17852, 22495, 27207, 32768, 0},
	{2464, 8451, 12861, 21632, 25525, 28555, 32768, 0},
	{1269, 5435, 10433, 18963, 21700, 25865, 32768, 0},
}

var defaultSegmentIdCdf = [3][9]uint16{
	{5622, 7893, 16093, 18233, 27809, 28373, 32533, 32768, 0},
	{14274, 18230, 22557, 24935, 29980, 30851, 32344, 32768, 0},
	{27527, 28487, 28723, 28890, 32397, 32647, 32679, 32768, 0},
}

var defaultTx8x8Cdf = [3][3]uint16{
	{19968, 32768, 0},
	{19968, 32768, 0},
	{24320, 32768, 0},
}

var defaultTx16x16Cdf = [3][4]uint16{
	{12272, 30172, 32768, 0},
	{12272, 30172, 32768, 0},
	{18677, 30848, 32768, 0},
}

var defaultTx32x32Cdf = [3][4]uint16{
	{12986, 15180, 32768, 0},
	{12986, 15180, 32768, 0},
	{24302, 25602, 32768, 0},
}

var defaultTx64x64Cdf = [3][4]uint16{
	{5782, 11475, 32768, 0},
	{5782, 11475, 32768, 0},
	{16803, 22759, 32768, 0},
}
